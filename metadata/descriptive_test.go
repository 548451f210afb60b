package metadata_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/JiscSD/rdss-image-archive/metadata"
)

func zucchabar(t *testing.T) *metadata.DescriptiveMetadata {
	t.Helper()

	name, err := metadata.NewName("Tom Elliott")
	require.NoError(t, err)
	agent, err := metadata.NewAgent(metadata.Instances(name))
	require.NoError(t, err)
	title, err := metadata.NewTitle("A quick trip to Zucchabar")
	require.NoError(t, err)

	m, err := metadata.NewDescriptiveMetadata(metadata.Contents{
		Agents: metadata.Instances(agent),
		Titles: metadata.Instances(title),
	})
	require.NoError(t, err)
	return m
}

const zucchabarJSON = `{
    "agents": [
        {
            "names": [
                {
                    "display_name": "Tom Elliott",
                    "full_name": "Tom Elliott",
                    "lang": "und",
                    "name_type": "personal",
                    "sort_key": "tomelliott"
                }
            ],
            "role": "photographer",
            "uris": []
        }
    ],
    "descriptions": [],
    "keywords": [],
    "titles": [
        {
            "lang": "und",
            "sort_key": "aquicktriptozucchabar",
            "title_type": "full",
            "value": "A quick trip to Zucchabar"
        }
    ]
}
`

func TestNewDescriptiveMetadata(t *testing.T) {
	t.Parallel()

	m := zucchabar(t)
	assert.Equal(t, "photographer: Tom Elliott", m.Agents()[0].String())
	assert.Equal(t, "A quick trip to Zucchabar", m.Titles()[0].Value())
	assert.Equal(t, "aquicktriptozucchabar", m.Titles()[0].SortKey())
	assert.Equal(t, "A quick trip to Zucchabar", m.Title())
	assert.Empty(t, m.Descriptions())
	assert.Empty(t, m.Keywords())
	assert.False(t, m.Empty())
}

func TestNewDescriptiveMetadata_Empty(t *testing.T) {
	t.Parallel()

	m, err := metadata.NewDescriptiveMetadata(metadata.Contents{})
	require.NoError(t, err)
	assert.True(t, m.Empty())
	assert.Equal(t, "", m.Title())

	m, err = metadata.DescriptiveMetadataFromSpec(metadata.Spec{})
	require.NoError(t, err)
	assert.True(t, m.Empty())
}

func TestNewDescriptiveMetadata_Specs(t *testing.T) {
	t.Parallel()

	name, err := metadata.NewName("Tom Elliott")
	require.NoError(t, err)

	m, err := metadata.NewDescriptiveMetadata(metadata.Contents{
		Agents: []metadata.Input[metadata.Agent]{
			metadata.FromSpec[metadata.Agent](metadata.Spec{"names": []*metadata.Name{name}}),
		},
		Titles: []metadata.Input[metadata.Title]{
			metadata.FromSpec[metadata.Title](metadata.Spec{"title_val": "A quick trip to Zucchabar"}),
		},
		Descriptions: []metadata.Input[metadata.Description]{
			metadata.FromSpec[metadata.Description](metadata.Spec{"value": "Ruins near Miliana."}),
		},
		Keywords: []metadata.Input[metadata.Keyword]{
			metadata.FromSpec[metadata.Keyword](metadata.Spec{"value": "Roman Africa"}),
			metadata.FromSpec[metadata.Keyword](metadata.Spec{"value": "Algeria", "lang": "en"}),
		},
	})
	require.NoError(t, err)

	assert.Equal(t, "photographer: Tom Elliott", m.Agents()[0].String())
	assert.Equal(t, "A quick trip to Zucchabar", m.Titles()[0].Value())
	assert.Equal(t, "Ruins near Miliana.", m.Descriptions()[0].Value())
	require.Len(t, m.Keywords(), 2)
	assert.Equal(t, "Roman Africa", m.Keywords()[0].Value())
	assert.Equal(t, "Algeria", m.Keywords()[1].Value())
}

func TestDescriptiveMetadataFromSpec_Invalid(t *testing.T) {
	t.Parallel()
	tests := map[string]struct {
		spec    metadata.Spec
		message string
	}{
		"Agents of the wrong type": {
			metadata.Spec{"agents": []interface{}{"the", "long", "and", "winding"}},
			"invalid Agent: Agent information of type string is not supported",
		},
		"Titles of the wrong type": {
			metadata.Spec{
				"agents": []interface{}{map[string]interface{}{"names": []interface{}{map[string]interface{}{"full_name": "Tom Elliott"}}}},
				"titles": []interface{}{"the", "road", "goes", "ever", "ever", "on"},
			},
			"invalid Title: Title information of type string is not supported",
		},
		"Not a list": {
			metadata.Spec{"keywords": "cotton"},
			"invalid Keyword: expected a list, got string",
		},
		"Unknown collection": {
			metadata.Spec{"copyright": []interface{}{}},
			"invalid DescriptiveMetadata: unexpected arguments: copyright",
		},
		"Invalid nested entity": {
			metadata.Spec{"keywords": []interface{}{map[string]interface{}{"value": "cotton", "uri": "pickles!"}}},
			`Keyword 0: invalid URI "pickles!": not an absolute URI`,
		},
	}
	for name, tc := range tests {
		tc := tc
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			m, err := metadata.DescriptiveMetadataFromSpec(tc.spec)
			assert.Nil(t, m)
			assert.EqualError(t, err, tc.message)
			var verr metadata.ValidationError
			assert.True(t, errors.As(err, &verr))
		})
	}
}

func TestDescriptiveMetadata_ToDict(t *testing.T) {
	t.Parallel()

	have, err := zucchabar(t).ToDict()
	require.NoError(t, err)

	var want map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(zucchabarJSON), &want))
	assert.Equal(t, want, have)
}

func TestDescriptiveMetadata_ToDictSchemaDrift(t *testing.T) {
	t.Parallel()

	m, err := metadata.NewDescriptiveMetadata(metadata.Contents{
		Agents: metadata.Instances(&metadata.Agent{}),
	})
	require.NoError(t, err)

	_, err = m.ToDict()
	var derr metadata.SchemaDriftError
	require.True(t, errors.As(err, &derr))
	assert.Equal(t, "Agent", derr.Entity)
	assert.Equal(t, "role", derr.Field)

	fs := afero.NewMemMapFs()
	err = m.WriteJSON(fs, "/metadata.json")
	assert.True(t, errors.As(err, &derr))
	exists, _ := afero.Exists(fs, "/metadata.json")
	assert.False(t, exists, "nothing should be written")
}

func TestDescriptiveMetadata_WriteJSON(t *testing.T) {
	t.Parallel()

	fs := afero.NewMemMapFs()
	m := zucchabar(t)
	require.NoError(t, m.WriteJSON(fs, "/zucchabar.json"))

	blob, err := afero.ReadFile(fs, "/zucchabar.json")
	require.NoError(t, err)
	assert.Equal(t, zucchabarJSON, string(blob))

	// Reloading the file yields the projection.
	var doc map[string]interface{}
	require.NoError(t, json.Unmarshal(blob, &doc))
	want, err := m.ToDict()
	require.NoError(t, err)
	assert.Equal(t, want, doc)

	// Overwriting replaces the previous contents.
	empty, err := metadata.NewDescriptiveMetadata(metadata.Contents{})
	require.NoError(t, err)
	require.NoError(t, empty.WriteJSON(fs, "/zucchabar.json"))
	blob, err = afero.ReadFile(fs, "/zucchabar.json")
	require.NoError(t, err)
	assert.JSONEq(t, `{"agents": [], "descriptions": [], "keywords": [], "titles": []}`, string(blob))
}

func TestDescriptiveMetadata_MarshalIndentUnicode(t *testing.T) {
	t.Parallel()

	title, err := metadata.NewTitle("Çà et là <Zoë & Łukasz>", metadata.WithLang("fr"))
	require.NoError(t, err)
	m, err := metadata.NewDescriptiveMetadata(metadata.Contents{Titles: metadata.Instances(title)})
	require.NoError(t, err)

	blob, err := m.MarshalIndent()
	require.NoError(t, err)
	assert.Contains(t, string(blob), `"value": "Çà et là <Zoë & Łukasz>"`)
	assert.Contains(t, string(blob), `"sort_key": "çàetlàzoëłukasz"`)

	again, err := m.MarshalIndent()
	require.NoError(t, err)
	assert.Equal(t, blob, again)
}

func TestDescriptiveMetadata_ReadJSON(t *testing.T) {
	t.Parallel()

	name, err := metadata.NewName("Tom Elliott", metadata.WithDisplayName("Elliott, Tom"), metadata.WithSortKey("ELLIOTT"))
	require.NoError(t, err)
	agent, err := metadata.NewAgent(metadata.Instances(name), metadata.WithURIs("http://orcid.org/0000-0002-4114-6677"))
	require.NoError(t, err)
	keyword, err := metadata.NewKeyword("cotton", metadata.WithURI("https://www.wikidata.org/wiki/Q11457"), metadata.WithLang("en"))
	require.NoError(t, err)
	description, err := metadata.NewDescription("A picture of cotton.")
	require.NoError(t, err)
	title, err := metadata.NewTitle("Moontown Cotton", metadata.WithTitleType(metadata.TitleTypeEnum_translated))
	require.NoError(t, err)
	m, err := metadata.NewDescriptiveMetadata(metadata.Contents{
		Agents:       metadata.Instances(agent),
		Titles:       metadata.Instances(title),
		Descriptions: metadata.Instances(description),
		Keywords:     metadata.Instances(keyword),
	})
	require.NoError(t, err)

	fs := afero.NewMemMapFs()
	require.NoError(t, m.WriteJSON(fs, "/metadata.json"))

	loaded, err := metadata.ReadJSON(fs, "/metadata.json")
	require.NoError(t, err)
	assert.Equal(t, m, loaded)
}

func TestDecode_Invalid(t *testing.T) {
	t.Parallel()

	_, err := metadata.Decode(bytes.NewBufferString(`{"agents": []}`))
	var verr metadata.ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, "document", verr.Field)

	_, err = metadata.Decode(bytes.NewBufferString(`{true: false}`))
	assert.Error(t, err)

	_, err = metadata.ReadJSON(afero.NewMemMapFs(), "/missing.json")
	assert.Error(t, err)
}
