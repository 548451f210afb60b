package metadata

import (
	"fmt"
)

// Name is one of the names an Agent is known by.
type Name struct {
	fullName    string
	displayName string
	sortKey     string
	nameType    NameTypeEnum
	lang        string
}

// NewName returns a Name. The display name defaults to the full name and the
// sort key is derived from the display name unless WithSortKey is given.
//
// Options honored: WithDisplayName, WithNameType, WithLang, WithSortKey.
func NewName(fullName string, opts ...Option) (*Name, error) {
	if fullName == "" {
		return nil, validationErrorf("full_name", "", "full name is required")
	}
	o := newOptions(opts)
	if _, ok := _NameTypeEnumValueToName[o.nameType]; !ok {
		return nil, validationErrorf("name_type", o.nameType.String(), "unknown name type")
	}
	lang, err := o.language()
	if err != nil {
		return nil, err
	}
	n := &Name{
		fullName:    fullName,
		displayName: o.displayName,
		nameType:    o.nameType,
		lang:        lang,
	}
	if n.displayName == "" {
		n.displayName = fullName
	}
	n.sortKey = DeriveSortKey(n.displayName, o.sortKey, o.forceSort)
	return n, nil
}

// NameFromSpec builds a Name from the keys full_name, display_name,
// name_type, lang and sort_key (or sort_val).
func NameFromSpec(s Spec) (*Name, error) {
	r := newSpecReader("Name", s)
	fullName := r.required("full_name")
	opts := r.common()
	if v, ok := r.str("display_name"); ok {
		opts = append(opts, WithDisplayName(v))
	}
	if v, ok := nameTypeOf(r); ok {
		opts = append(opts, WithNameType(v))
	}
	if err := r.finish(); err != nil {
		return nil, err
	}
	return NewName(fullName, opts...)
}

func (n *Name) FullName() string       { return n.fullName }
func (n *Name) DisplayName() string    { return n.displayName }
func (n *Name) SortKey() string        { return n.sortKey }
func (n *Name) NameType() NameTypeEnum { return n.nameType }
func (n *Name) Lang() string           { return n.lang }

func (n *Name) String() string {
	return fmt.Sprintf("%s name: \"%s\"", n.nameType, n.fullName)
}
