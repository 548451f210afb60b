package metadata

// Description is a free text account of the archived item.
type Description struct {
	value   string
	sortKey string
	lang    string
}

// NewDescription returns a Description.
//
// Options honored: WithLang, WithSortKey.
func NewDescription(value string, opts ...Option) (*Description, error) {
	lang, sortKey, err := languageAndSortKey(value, newOptions(opts))
	if err != nil {
		return nil, err
	}
	return &Description{value: value, sortKey: sortKey, lang: lang}, nil
}

// DescriptionFromSpec builds a Description from the keys value, lang and
// sort_key (or sort_val).
func DescriptionFromSpec(s Spec) (*Description, error) {
	r := newSpecReader("Description", s)
	value := r.required("value")
	opts := r.common()
	if err := r.finish(); err != nil {
		return nil, err
	}
	return NewDescription(value, opts...)
}

func (d *Description) Value() string   { return d.value }
func (d *Description) SortKey() string { return d.sortKey }
func (d *Description) Lang() string    { return d.lang }
func (d *Description) String() string  { return d.value }
