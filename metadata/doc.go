/*
Package metadata models the descriptive metadata of archived items: agents
and their names, titles, descriptions and keywords.

Entities are validated when constructed and never change afterwards. Their
language tags are checked against the IANA subtag registry and their sort
keys are derived from their display strings unless given explicitly.

Containers accept each of their entities either constructed or as a Spec,
the map of arguments the entity is constructed from:

	agent, err := metadata.NewAgent([]metadata.Input[metadata.Name]{
		metadata.FromSpec[metadata.Name](metadata.Spec{"full_name": "Tom Elliott"}),
	})

DescriptiveMetadata is the aggregate persisted as metadata.json in every
package of the archive, see WriteJSON and ReadJSON.
*/
package metadata
