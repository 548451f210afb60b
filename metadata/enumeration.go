package metadata

import (
	"encoding/json"
	"fmt"
)

// NameTypeEnum classifies a Name.
type NameTypeEnum int

const (
	_ NameTypeEnum = iota
	NameTypeEnum_personal
	NameTypeEnum_corporate
	NameTypeEnum_family
	NameTypeEnum_other
)

var _NameTypeEnumValueToName = map[NameTypeEnum]string{
	NameTypeEnum_personal:  "personal",
	NameTypeEnum_corporate: "corporate",
	NameTypeEnum_family:    "family",
	NameTypeEnum_other:     "other",
}

var _NameTypeEnumNameToValue = map[string]NameTypeEnum{
	"personal":  NameTypeEnum_personal,
	"corporate": NameTypeEnum_corporate,
	"family":    NameTypeEnum_family,
	"other":     NameTypeEnum_other,
}

func (e NameTypeEnum) String() string {
	if s, ok := _NameTypeEnumValueToName[e]; ok {
		return s
	}
	return fmt.Sprintf("NameTypeEnum(%d)", int(e))
}

func (e NameTypeEnum) MarshalJSON() ([]byte, error) {
	s, ok := _NameTypeEnumValueToName[e]
	if !ok {
		return nil, SchemaDriftError{Entity: "NameTypeEnum", Message: fmt.Sprintf("no code for value %d", int(e))}
	}
	return json.Marshal(s)
}

func (e *NameTypeEnum) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("NameTypeEnum should be a string, got %s", data)
	}
	v, err := ParseNameTypeEnum(s)
	if err != nil {
		return err
	}
	*e = v
	return nil
}

// ParseNameTypeEnum returns the NameTypeEnum identified by its code.
func ParseNameTypeEnum(s string) (NameTypeEnum, error) {
	v, ok := _NameTypeEnumNameToValue[s]
	if !ok {
		return 0, validationErrorf("name_type", s, "unknown name type")
	}
	return v, nil
}

// RoleTermEnum is the role played by an Agent.
type RoleTermEnum int

const (
	_ RoleTermEnum = iota
	RoleTermEnum_photographer
)

var _RoleTermEnumValueToName = map[RoleTermEnum]string{
	RoleTermEnum_photographer: "photographer",
}

var _RoleTermEnumNameToValue = map[string]RoleTermEnum{
	"photographer": RoleTermEnum_photographer,
}

func (e RoleTermEnum) String() string {
	if s, ok := _RoleTermEnumValueToName[e]; ok {
		return s
	}
	return fmt.Sprintf("RoleTermEnum(%d)", int(e))
}

func (e RoleTermEnum) MarshalJSON() ([]byte, error) {
	s, ok := _RoleTermEnumValueToName[e]
	if !ok {
		return nil, SchemaDriftError{Entity: "RoleTermEnum", Message: fmt.Sprintf("no code for value %d", int(e))}
	}
	return json.Marshal(s)
}

func (e *RoleTermEnum) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("RoleTermEnum should be a string, got %s", data)
	}
	v, err := ParseRoleTermEnum(s)
	if err != nil {
		return err
	}
	*e = v
	return nil
}

// ParseRoleTermEnum returns the RoleTermEnum identified by its code.
func ParseRoleTermEnum(s string) (RoleTermEnum, error) {
	v, ok := _RoleTermEnumNameToValue[s]
	if !ok {
		return 0, validationErrorf("role", s, "unknown role term")
	}
	return v, nil
}

// TitleTypeEnum classifies a Title.
type TitleTypeEnum int

const (
	_ TitleTypeEnum = iota
	TitleTypeEnum_full
	TitleTypeEnum_short
	TitleTypeEnum_subtitle
	TitleTypeEnum_translated
)

var _TitleTypeEnumValueToName = map[TitleTypeEnum]string{
	TitleTypeEnum_full:       "full",
	TitleTypeEnum_short:      "short",
	TitleTypeEnum_subtitle:   "subtitle",
	TitleTypeEnum_translated: "translated",
}

var _TitleTypeEnumNameToValue = map[string]TitleTypeEnum{
	"full":       TitleTypeEnum_full,
	"short":      TitleTypeEnum_short,
	"subtitle":   TitleTypeEnum_subtitle,
	"translated": TitleTypeEnum_translated,
}

func (e TitleTypeEnum) String() string {
	if s, ok := _TitleTypeEnumValueToName[e]; ok {
		return s
	}
	return fmt.Sprintf("TitleTypeEnum(%d)", int(e))
}

func (e TitleTypeEnum) MarshalJSON() ([]byte, error) {
	s, ok := _TitleTypeEnumValueToName[e]
	if !ok {
		return nil, SchemaDriftError{Entity: "TitleTypeEnum", Message: fmt.Sprintf("no code for value %d", int(e))}
	}
	return json.Marshal(s)
}

func (e *TitleTypeEnum) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("TitleTypeEnum should be a string, got %s", data)
	}
	v, err := ParseTitleTypeEnum(s)
	if err != nil {
		return err
	}
	*e = v
	return nil
}

// ParseTitleTypeEnum returns the TitleTypeEnum identified by its code.
func ParseTitleTypeEnum(s string) (TitleTypeEnum, error) {
	v, ok := _TitleTypeEnumNameToValue[s]
	if !ok {
		return 0, validationErrorf("title_type", s, "unknown title type")
	}
	return v, nil
}
