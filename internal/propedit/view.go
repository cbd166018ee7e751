package propedit

import "netcanvas/internal/domain"

// FieldView is one row of the form
type FieldView struct {
	Field   Field    `json:"field"`
	Label   string   `json:"label"`
	Value   string   `json:"value"`
	Dirty   bool     `json:"dirty"`
	Options []string `json:"options,omitempty"`
}

// View is the read-only projection hosts render. When Placeholder is set only
// Prompt is meaningful.
type View struct {
	Placeholder bool        `json:"placeholder"`
	Prompt      string      `json:"prompt,omitempty"`
	DeviceID    string      `json:"device_id,omitempty"`
	Title       string      `json:"title,omitempty"`
	Dirty       bool        `json:"dirty"`
	Fields      []FieldView `json:"fields,omitempty"`
}

// View builds the current projection. The title uses the snapshot's name,
// not the draft's.
func (f *Form) View() View {
	if f.target == nil {
		return View{Placeholder: true, Prompt: Placeholder}
	}

	fields := make([]FieldView, 0, len(Fields))
	for _, field := range Fields {
		fv := FieldView{
			Field: field,
			Label: field.Label(),
			Value: fieldValue(f.draft, field),
			Dirty: fieldValue(f.draft, field) != fieldValue(f.base, field),
		}
		if field == FieldCategory {
			fv.Options = categoryOptions()
		}
		fields = append(fields, fv)
	}

	return View{
		DeviceID: f.target.ID,
		Title:    "Edit: " + f.target.Name,
		Dirty:    f.Dirty(),
		Fields:   fields,
	}
}

func categoryOptions() []string {
	opts := make([]string, len(domain.Categories))
	for i, c := range domain.Categories {
		opts[i] = string(c)
	}
	return opts
}
