package apiclient

// Params are the caller-supplied parameters of a dynamic call.
// Parts left nil are absent.
type Params struct {
	Path   map[string]any
	Query  map[string]any
	Body   any
	Header map[string]any
}

// value returns the parameters as the structural object validated against
// a ParameterSchema.
func (p *Params) value() map[string]any {
	v := make(map[string]any, 4)
	if p == nil {
		return v
	}
	if p.Path != nil {
		v[PartPath] = p.Path
	}
	if p.Query != nil {
		v[PartQuery] = p.Query
	}
	if p.Body != nil {
		v[PartBody] = p.Body
	}
	if p.Header != nil {
		v[PartHeader] = p.Header
	}
	return v
}

// orderedQuery lists validated query values in declaration order.
func orderedQuery(s *Schema, validated any) []QueryParam {
	values, _ := validated.(map[string]any)
	if s == nil || len(values) == 0 {
		return nil
	}
	query := make([]QueryParam, 0, len(values))
	for _, f := range s.Fields {
		if v, ok := values[f.Name]; ok {
			query = append(query, QueryParam{Key: f.Name, Value: v})
		}
	}
	return query
}
