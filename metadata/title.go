package metadata

// Title is a title of the archived item.
type Title struct {
	value     string
	titleType TitleTypeEnum
	sortKey   string
	lang      string
}

// NewTitle returns a Title of type full unless WithTitleType says otherwise.
//
// Options honored: WithTitleType, WithLang, WithSortKey.
func NewTitle(value string, opts ...Option) (*Title, error) {
	o := newOptions(opts)
	if _, ok := _TitleTypeEnumValueToName[o.titleType]; !ok {
		return nil, validationErrorf("title_type", o.titleType.String(), "unknown title type")
	}
	lang, sortKey, err := languageAndSortKey(value, o)
	if err != nil {
		return nil, err
	}
	return &Title{value: value, titleType: o.titleType, sortKey: sortKey, lang: lang}, nil
}

// TitleFromSpec builds a Title from the keys title_val (or value),
// title_type, lang and sort_key (or sort_val).
func TitleFromSpec(s Spec) (*Title, error) {
	r := newSpecReader("Title", s)
	value, ok := r.str("title_val", "value")
	if !ok {
		r.fail(validationErrorf("Title", "", "title_val is required"))
	}
	opts := r.common()
	if v, ok := titleTypeOf(r); ok {
		opts = append(opts, WithTitleType(v))
	}
	if err := r.finish(); err != nil {
		return nil, err
	}
	return NewTitle(value, opts...)
}

func (t *Title) Value() string            { return t.value }
func (t *Title) TitleType() TitleTypeEnum { return t.titleType }
func (t *Title) SortKey() string          { return t.sortKey }
func (t *Title) Lang() string             { return t.lang }
func (t *Title) String() string           { return t.value }

// languageAndSortKey validates the language and derives the sort key of the
// entities whose display string is their value.
func languageAndSortKey(value string, o *options) (string, string, error) {
	lang, err := o.language()
	if err != nil {
		return "", "", err
	}
	return lang, DeriveSortKey(value, o.sortKey, o.forceSort), nil
}
