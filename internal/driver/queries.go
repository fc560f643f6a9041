package driver

// Entities are stored under one label with their variant as a property, and
// relationships under one type with their variant in `type`: Cypher cannot
// take labels or relationship types as parameters.
const (
	EntityLabel       = "OrgEntity"
	RelationshipLabel = "ORG_REL"
)

var IndexQueries = []string{
	"CREATE INDEX ON :OrgEntity(id);",
	"CREATE INDEX ON :OrgEntity(entity_type);",
	"CREATE INDEX ON :OrgEntity(name);",
	"CREATE EDGE INDEX ON :ORG_REL(id);",
}

const (
	MergeEntitiesQuery = `
		UNWIND $rows AS row
		MERGE (n:OrgEntity {id: row.id})
		SET n.entity_type = row.entity_type,
			n.name = row.name,
			n.description = row.description,
			n.tags = row.tags,
			n.attributes = row.attributes,
			n.created_at = row.created_at,
			n.updated_at = row.updated_at,
			n.version = row.version
		RETURN count(n) AS written
	`

	MergeRelationshipsQuery = `
		UNWIND $rows AS row
		MATCH (source:OrgEntity {id: row.source_id})
		MATCH (target:OrgEntity {id: row.target_id})
		MERGE (source)-[r:ORG_REL {id: row.id}]->(target)
		SET r.type = row.relationship_type,
			r.weight = row.weight,
			r.confidence = row.confidence,
			r.properties = row.properties,
			r.created_at = row.created_at
		RETURN count(r) AS written
	`

	PurgeQuery = `
		MATCH (n:OrgEntity)
		DETACH DELETE n
	`
)
