package annotation

// The builders below run only on values that passed Validate, so required
// fields are known to be present with the right primitive type. Anything
// nested deeper is read leniently: a field of the wrong type is left empty.

func toolFromObject(obj map[string]any) Tool {
	params, _ := obj["parameters"].(map[string]any)
	return Tool{
		Name:        stringField(obj, "name"),
		Description: stringField(obj, "description"),
		Parameters: Parameters{
			Type:       stringField(params, "type"),
			Properties: propertiesField(params, "properties"),
			Required:   stringsField(params, "required"),
		},
	}
}

func promptFromObject(obj map[string]any) Prompt {
	return Prompt{
		Name:        stringField(obj, "name"),
		Description: stringField(obj, "description"),
		Template:    stringField(obj, "template"),
		Variables:   stringsField(obj, "variables"),
	}
}

func resourceFromObject(obj map[string]any) Resource {
	return Resource{
		Name:    stringField(obj, "name"),
		Type:    stringField(obj, "type"),
		Path:    stringField(obj, "path"),
		Handler: stringField(obj, "handler"),
	}
}

func stringField(obj map[string]any, key string) string {
	s, _ := obj[key].(string)
	return s
}

// stringsField keeps only the string elements of an array field.
func stringsField(obj map[string]any, key string) []string {
	items, _ := obj[key].([]any)
	out := make([]string, 0, len(items))
	for _, item := range items {
		if s, ok := item.(string); ok {
			out = append(out, s)
		}
	}
	return out
}

func propertiesField(obj map[string]any, key string) map[string]Property {
	raw, _ := obj[key].(map[string]any)
	props := make(map[string]Property, len(raw))
	for name, v := range raw {
		p, _ := v.(map[string]any)
		prop := Property{
			Type:        stringField(p, "type"),
			Description: stringField(p, "description"),
		}
		if req, ok := p["required"].(bool); ok {
			prop.Required = &req
		}
		props[name] = prop
	}
	return props
}
