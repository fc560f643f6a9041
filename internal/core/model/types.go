package model

import "fmt"

// EntityType is the closed set of entity variants.
type EntityType string

const (
	EntityPerson             EntityType = "Person"
	EntityDepartment         EntityType = "Department"
	EntityTeam               EntityType = "Team"
	EntityRole               EntityType = "Role"
	EntitySite               EntityType = "Site"
	EntityGeography          EntityType = "Geography"
	EntityCostCenter         EntityType = "CostCenter"
	EntitySystem             EntityType = "System"
	EntityNetwork            EntityType = "Network"
	EntityIntegration        EntityType = "Integration"
	EntityDataAsset          EntityType = "DataAsset"
	EntityDataDomain         EntityType = "DataDomain"
	EntityDataFlow           EntityType = "DataFlow"
	EntityPolicy             EntityType = "Policy"
	EntityControl            EntityType = "Control"
	EntityRegulation         EntityType = "Regulation"
	EntityRisk               EntityType = "Risk"
	EntityAudit              EntityType = "Audit"
	EntityThreat             EntityType = "Threat"
	EntityVulnerability      EntityType = "Vulnerability"
	EntityIncident           EntityType = "Incident"
	EntityVendor             EntityType = "Vendor"
	EntityContract           EntityType = "Contract"
	EntityBusinessCapability EntityType = "BusinessCapability"
	EntityProcess            EntityType = "Process"
	EntityProduct            EntityType = "Product"
	EntityCustomer           EntityType = "Customer"
	EntityMarket             EntityType = "Market"
	EntityProject            EntityType = "Project"
	EntityInitiative         EntityType = "Initiative"
)

// EntityTypes lists every entity variant in catalogue order.
var EntityTypes = []EntityType{
	EntityPerson, EntityDepartment, EntityTeam, EntityRole, EntitySite, EntityGeography, EntityCostCenter,
	EntitySystem, EntityNetwork, EntityIntegration,
	EntityDataAsset, EntityDataDomain, EntityDataFlow,
	EntityPolicy, EntityControl, EntityRegulation, EntityRisk, EntityAudit,
	EntityThreat, EntityVulnerability, EntityIncident,
	EntityVendor, EntityContract,
	EntityBusinessCapability, EntityProcess, EntityProduct, EntityCustomer, EntityMarket, EntityProject, EntityInitiative,
}

var entityTypeSet = func() map[EntityType]bool {
	m := make(map[EntityType]bool, len(EntityTypes))
	for _, t := range EntityTypes {
		m[t] = true
	}
	return m
}()

func (t EntityType) Valid() bool { return entityTypeSet[t] }

// ParseEntityType returns the variant named s or an error for unknown tags.
func ParseEntityType(s string) (EntityType, error) {
	t := EntityType(s)
	if !t.Valid() {
		return "", fmt.Errorf("unknown entity type %q", s)
	}
	return t, nil
}

// RelationshipType is the closed set of relationship variants.
type RelationshipType string

const (
	RelWorksIn         RelationshipType = "WORKS_IN"
	RelMemberOf        RelationshipType = "MEMBER_OF"
	RelHasRole         RelationshipType = "HAS_ROLE"
	RelReportsTo       RelationshipType = "REPORTS_TO"
	RelManages         RelationshipType = "MANAGES"
	RelLocatedAt       RelationshipType = "LOCATED_AT"
	RelPartOf          RelationshipType = "PART_OF"
	RelRoleIn          RelationshipType = "ROLE_IN"
	RelHousedAt        RelationshipType = "HOUSED_AT"
	RelInRegion        RelationshipType = "IN_REGION"
	RelFundedBy        RelationshipType = "FUNDED_BY"
	RelDependsOn       RelationshipType = "DEPENDS_ON"
	RelConnectsTo      RelationshipType = "CONNECTS_TO"
	RelHostedAt        RelationshipType = "HOSTED_AT"
	RelIntegrates      RelationshipType = "INTEGRATES"
	RelStores          RelationshipType = "STORES"
	RelSupports        RelationshipType = "SUPPORTS"
	RelFlowsFrom       RelationshipType = "FLOWS_FROM"
	RelFlowsTo         RelationshipType = "FLOWS_TO"
	RelCarries         RelationshipType = "CARRIES"
	RelInDomain        RelationshipType = "IN_DOMAIN"
	RelOwns            RelationshipType = "OWNS"
	RelGoverns         RelationshipType = "GOVERNS"
	RelImplements      RelationshipType = "IMPLEMENTS"
	RelSatisfies       RelationshipType = "SATISFIES"
	RelMitigatedBy     RelationshipType = "MITIGATED_BY"
	RelAppliesTo       RelationshipType = "APPLIES_TO"
	RelAudits          RelationshipType = "AUDITS"
	RelImpacts         RelationshipType = "IMPACTS"
	RelAffects         RelationshipType = "AFFECTS"
	RelThreatens       RelationshipType = "THREATENS"
	RelExploits        RelationshipType = "EXPLOITS"
	RelLeadsTo         RelationshipType = "LEADS_TO"
	RelDisrupted       RelationshipType = "DISRUPTED"
	RelCausedBy        RelationshipType = "CAUSED_BY"
	RelHandledBy       RelationshipType = "HANDLED_BY"
	RelSupplies        RelationshipType = "SUPPLIES"
	RelHasContract     RelationshipType = "HAS_CONTRACT"
	RelCovers          RelationshipType = "COVERS"
	RelManagesContract RelationshipType = "MANAGES_CONTRACT"
	RelPoses           RelationshipType = "POSES"
	RelUses            RelationshipType = "USES"
	RelPerforms        RelationshipType = "PERFORMS"
	RelEnables         RelationshipType = "ENABLES"
	RelOfferedIn       RelationshipType = "OFFERED_IN"
	RelServes          RelationshipType = "SERVES"
	RelSegmentOf       RelationshipType = "SEGMENT_OF"
	RelBuiltOn         RelationshipType = "BUILT_ON"
	RelDelivers        RelationshipType = "DELIVERS"
	RelIncludes        RelationshipType = "INCLUDES"
	RelSponsors        RelationshipType = "SPONSORS"
	RelWorksOn         RelationshipType = "WORKS_ON"
	RelAdvances        RelationshipType = "ADVANCES"
	RelRelatedTo       RelationshipType = "RELATED_TO"
)

// RelationshipTypes lists every relationship variant in catalogue order.
var RelationshipTypes = []RelationshipType{
	RelWorksIn, RelMemberOf, RelHasRole, RelReportsTo, RelManages, RelLocatedAt, RelPartOf, RelRoleIn,
	RelHousedAt, RelInRegion, RelFundedBy,
	RelDependsOn, RelConnectsTo, RelHostedAt, RelIntegrates, RelStores, RelSupports,
	RelFlowsFrom, RelFlowsTo, RelCarries, RelInDomain,
	RelOwns, RelGoverns, RelImplements, RelSatisfies, RelMitigatedBy, RelAppliesTo, RelAudits, RelImpacts,
	RelAffects, RelThreatens, RelExploits, RelLeadsTo, RelDisrupted, RelCausedBy, RelHandledBy,
	RelSupplies, RelHasContract, RelCovers, RelManagesContract, RelPoses,
	RelUses, RelPerforms, RelEnables, RelOfferedIn, RelServes, RelSegmentOf, RelBuiltOn, RelDelivers,
	RelIncludes, RelSponsors, RelWorksOn, RelAdvances,
	RelRelatedTo,
}

var relationshipTypeSet = func() map[RelationshipType]bool {
	m := make(map[RelationshipType]bool, len(RelationshipTypes))
	for _, t := range RelationshipTypes {
		m[t] = true
	}
	return m
}()

func (t RelationshipType) Valid() bool { return relationshipTypeSet[t] }

// ParseRelationshipType returns the variant named s or an error for unknown tags.
func ParseRelationshipType(s string) (RelationshipType, error) {
	t := RelationshipType(s)
	if !t.Valid() {
		return "", fmt.Errorf("unknown relationship type %q", s)
	}
	return t, nil
}
