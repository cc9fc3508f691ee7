// Package admin exposes the operator surface as data: a Resource describes
// which fields are listed, searched, filtered, and edited, and a generic
// Lister consumes that description. Nothing here subclasses anything; the
// projection is plain configuration.
package admin

// Field declares what operators may do with a single column.
type Field struct {
	Name       string `json:"name"`
	Display    bool   `json:"display,omitempty"`
	Searchable bool   `json:"searchable,omitempty"`
	Filterable bool   `json:"filterable,omitempty"`
	Editable   bool   `json:"editable,omitempty"`
	ReadOnly   bool   `json:"read_only,omitempty"`
}

// Fieldset groups fields on the edit form.
type Fieldset struct {
	Label  string   `json:"label"`
	Fields []string `json:"fields"`
}

// Resource is the full declarative projection for one entity.
type Resource struct {
	Name      string     `json:"name"`
	Table     string     `json:"table"`
	Fields    []Field    `json:"fields"`
	Ordering  []string   `json:"ordering"`
	Fieldsets []Fieldset `json:"fieldsets"`
}

// ListDisplay returns the columns shown on the list view, in order.
func (r Resource) ListDisplay() []string {
	return r.collect(func(f Field) bool { return f.Display })
}

// SearchFields returns the substring-search columns.
func (r Resource) SearchFields() []string {
	return r.collect(func(f Field) bool { return f.Searchable })
}

// FilterFields returns the columns operators can filter on.
func (r Resource) FilterFields() []string {
	return r.collect(func(f Field) bool { return f.Filterable })
}

// EditableFields returns the columns the change form accepts.
func (r Resource) EditableFields() []string {
	return r.collect(func(f Field) bool { return f.Editable && !f.ReadOnly })
}

// ReadOnlyFields returns the columns rendered but never written.
func (r Resource) ReadOnlyFields() []string {
	return r.collect(func(f Field) bool { return f.ReadOnly })
}

// HasField reports whether the resource declares the named field.
func (r Resource) HasField(name string) bool {
	for _, f := range r.Fields {
		if f.Name == name {
			return true
		}
	}
	return false
}

func (r Resource) collect(keep func(Field) bool) []string {
	var out []string
	for _, f := range r.Fields {
		if keep(f) {
			out = append(out, f.Name)
		}
	}
	return out
}

// AccountsResource is the operator projection over the accounts table. The
// list shows email, names, and the staff/active flags ordered by email;
// search covers email and names; staff and active are independent filters
// that combine with AND; groups, capabilities, last_login_at, and date_joined
// are read-only. Membership and grant edits go through the Groups repository.
func AccountsResource() Resource {
	return Resource{
		Name:  "accounts",
		Table: "accounts",
		Fields: []Field{
			{Name: "email", Display: true, Searchable: true, Editable: true},
			{Name: "first_name", Display: true, Searchable: true, Editable: true},
			{Name: "last_name", Display: true, Searchable: true, Editable: true},
			{Name: "is_staff", Display: true, Filterable: true, Editable: true},
			{Name: "is_active", Display: true, Filterable: true, Editable: true},
			{Name: "is_superuser", Editable: true},
			{Name: "groups", ReadOnly: true},
			{Name: "capabilities", ReadOnly: true},
			{Name: "last_login_at", ReadOnly: true},
			{Name: "date_joined", ReadOnly: true},
		},
		Ordering: []string{"email ASC"},
		Fieldsets: []Fieldset{
			{Label: "Credentials", Fields: []string{"email", "password"}},
			{Label: "Personal Info", Fields: []string{"first_name", "last_name"}},
			{Label: "Permissions", Fields: []string{"is_active", "is_staff", "is_superuser", "groups", "capabilities"}},
			{Label: "Important Dates", Fields: []string{"last_login_at", "date_joined"}},
		},
	}
}
