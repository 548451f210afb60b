package metadata

// Keyword is a subject term, optionally bound to a vocabulary URI.
type Keyword struct {
	value   string
	uri     string
	sortKey string
	lang    string
}

// NewKeyword returns a Keyword. The URI, when given, must be absolute.
//
// Options honored: WithURI, WithLang, WithSortKey.
func NewKeyword(value string, opts ...Option) (*Keyword, error) {
	o := newOptions(opts)
	if o.uri != "" {
		if err := ValidateURI(o.uri); err != nil {
			return nil, err
		}
	}
	lang, sortKey, err := languageAndSortKey(value, o)
	if err != nil {
		return nil, err
	}
	return &Keyword{value: value, uri: o.uri, sortKey: sortKey, lang: lang}, nil
}

// KeywordFromSpec builds a Keyword from the keys value, uri, lang and
// sort_key (or sort_val). An empty uri means no uri.
func KeywordFromSpec(s Spec) (*Keyword, error) {
	r := newSpecReader("Keyword", s)
	value := r.required("value")
	opts := r.common()
	if v, ok := r.str("uri"); ok && v != "" {
		opts = append(opts, WithURI(v))
	}
	if err := r.finish(); err != nil {
		return nil, err
	}
	return NewKeyword(value, opts...)
}

func (k *Keyword) Value() string   { return k.value }
func (k *Keyword) URI() string     { return k.uri }
func (k *Keyword) SortKey() string { return k.sortKey }
func (k *Keyword) Lang() string    { return k.lang }
func (k *Keyword) String() string  { return k.value }
