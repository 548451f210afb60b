package metadata

import (
	"net/url"

	"github.com/xeipuuv/gojsonschema"
)

// Option configures the construction of an entity. Entities ignore the
// options that do not apply to them, e.g. WithTitleType given to NewName.
type Option func(*options)

type options struct {
	lang        string
	sortKey     string
	forceSort   bool
	displayName string
	nameType    NameTypeEnum
	titleType   TitleTypeEnum
	role        RoleTermEnum
	uris        []string
	uri         string
}

func newOptions(opts []Option) *options {
	o := &options{
		nameType:  NameTypeEnum_personal,
		titleType: TitleTypeEnum_full,
		role:      RoleTermEnum_photographer,
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// WithLang sets the BCP-47 language tag. An empty tag leaves the default,
// "und", in place.
func WithLang(tag string) Option {
	return func(o *options) {
		o.lang = tag
	}
}

// WithSortKey stores key as the sort key verbatim, skipping normalization.
func WithSortKey(key string) Option {
	return func(o *options) {
		o.sortKey = key
		o.forceSort = true
	}
}

// WithDisplayName sets how a Name is shown; defaults to its full name.
func WithDisplayName(name string) Option {
	return func(o *options) {
		o.displayName = name
	}
}

// WithNameType sets the kind of a Name, e.g. personal or corporate.
func WithNameType(t NameTypeEnum) Option {
	return func(o *options) {
		o.nameType = t
	}
}

// WithTitleType sets the kind of a Title.
func WithTitleType(t TitleTypeEnum) Option {
	return func(o *options) {
		o.titleType = t
	}
}

// WithRole sets the role an Agent played.
func WithRole(r RoleTermEnum) Option {
	return func(o *options) {
		o.role = r
	}
}

// WithURIs appends identifiers of an Agent, e.g. an ORCID.
func WithURIs(uris ...string) Option {
	return func(o *options) {
		o.uris = append(o.uris, uris...)
	}
}

// WithURI sets the vocabulary URI of a Keyword.
func WithURI(uri string) Option {
	return func(o *options) {
		o.uri = uri
	}
}

// language returns the validated tag, defaulting to Undetermined.
func (o *options) language() (string, error) {
	if o.lang == "" {
		return Undetermined, nil
	}
	if err := ValidateLanguage(o.lang); err != nil {
		return "", err
	}
	return o.lang, nil
}

// ValidateURI accepts absolute URIs with a scheme and a host.
func ValidateURI(uri string) error {
	if !gojsonschema.FormatCheckers.IsFormat("uri", uri) {
		return validationErrorf("URI", uri, "not an absolute URI")
	}
	u, err := url.Parse(uri)
	if err != nil {
		return validationErrorf("URI", uri, "%v", err)
	}
	if u.Host == "" {
		return validationErrorf("URI", uri, "host is missing")
	}
	return nil
}
