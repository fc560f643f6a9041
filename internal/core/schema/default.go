package schema

import "github.com/agenthands/orggraph/internal/core/model"

type types = []model.EntityType

// Default returns the registry for the organization graph. RELATED_TO has
// no entry and is accepted between any pair of variants.
func Default() *Registry {
	return New(map[model.RelationshipType]Constraint{
		model.RelWorksIn:   {types{model.EntityPerson}, types{model.EntityDepartment}},
		model.RelMemberOf:  {types{model.EntityPerson}, types{model.EntityTeam}},
		model.RelHasRole:   {types{model.EntityPerson}, types{model.EntityRole}},
		model.RelReportsTo: {types{model.EntityPerson}, types{model.EntityPerson}},
		model.RelManages:   {types{model.EntityPerson}, types{model.EntityDepartment, model.EntityTeam}},
		model.RelLocatedAt: {types{model.EntityPerson}, types{model.EntitySite}},
		model.RelPartOf:    {types{model.EntityTeam}, types{model.EntityDepartment}},
		model.RelRoleIn:    {types{model.EntityRole}, types{model.EntityDepartment}},
		model.RelHousedAt:  {types{model.EntityDepartment}, types{model.EntitySite}},
		model.RelInRegion:  {types{model.EntitySite, model.EntityMarket}, types{model.EntityGeography}},
		model.RelFundedBy:  {types{model.EntityDepartment, model.EntityProject}, types{model.EntityCostCenter}},

		model.RelDependsOn:  {types{model.EntitySystem}, types{model.EntitySystem}},
		model.RelConnectsTo: {types{model.EntitySystem}, types{model.EntityNetwork}},
		model.RelHostedAt:   {types{model.EntitySystem}, types{model.EntitySite}},
		model.RelIntegrates: {types{model.EntityIntegration}, types{model.EntitySystem}},
		model.RelStores:     {types{model.EntitySystem}, types{model.EntityDataAsset}},
		model.RelSupports:   {types{model.EntitySystem}, types{model.EntityBusinessCapability}},

		model.RelFlowsFrom: {types{model.EntityDataFlow}, types{model.EntitySystem}},
		model.RelFlowsTo:   {types{model.EntityDataFlow}, types{model.EntitySystem}},
		model.RelCarries:   {types{model.EntityDataFlow}, types{model.EntityDataAsset}},
		model.RelInDomain:  {types{model.EntityDataAsset, model.EntityDataFlow}, types{model.EntityDataDomain}},

		model.RelOwns: {
			types{model.EntityPerson, model.EntityDepartment, model.EntityTeam},
			types{model.EntitySystem, model.EntityDataAsset, model.EntityProcess, model.EntityPolicy, model.EntityRisk, model.EntityControl},
		},
		model.RelGoverns:     {types{model.EntityPolicy}, types{model.EntitySystem, model.EntityDataAsset, model.EntityProcess, model.EntityDepartment}},
		model.RelImplements:  {types{model.EntityControl}, types{model.EntityPolicy}},
		model.RelSatisfies:   {types{model.EntityControl}, types{model.EntityRegulation}},
		model.RelMitigatedBy: {types{model.EntityRisk}, types{model.EntityControl}},
		model.RelAppliesTo:   {types{model.EntityRegulation}, types{model.EntityDepartment, model.EntityProcess, model.EntityDataAsset}},
		model.RelAudits:      {types{model.EntityAudit}, types{model.EntityControl, model.EntityDepartment, model.EntitySystem}},
		model.RelImpacts:     {types{model.EntityRisk}, types{model.EntityBusinessCapability, model.EntityProcess, model.EntitySystem}},

		model.RelAffects:   {types{model.EntityVulnerability}, types{model.EntitySystem}},
		model.RelThreatens: {types{model.EntityThreat}, types{model.EntitySystem, model.EntityDataAsset, model.EntitySite}},
		model.RelExploits:  {types{model.EntityThreat}, types{model.EntityVulnerability}},
		model.RelLeadsTo:   {types{model.EntityThreat}, types{model.EntityRisk}},
		model.RelDisrupted: {types{model.EntityIncident}, types{model.EntitySystem}},
		model.RelCausedBy:  {types{model.EntityIncident}, types{model.EntityVulnerability, model.EntityThreat}},
		model.RelHandledBy: {types{model.EntityIncident}, types{model.EntityTeam}},

		model.RelSupplies:        {types{model.EntityVendor}, types{model.EntitySystem, model.EntityProduct}},
		model.RelHasContract:     {types{model.EntityVendor}, types{model.EntityContract}},
		model.RelCovers:          {types{model.EntityContract}, types{model.EntitySystem}},
		model.RelManagesContract: {types{model.EntityPerson}, types{model.EntityContract}},
		model.RelPoses:           {types{model.EntityVendor}, types{model.EntityRisk}},

		model.RelUses:      {types{model.EntityProcess}, types{model.EntitySystem}},
		model.RelPerforms:  {types{model.EntityDepartment}, types{model.EntityProcess}},
		model.RelEnables:   {types{model.EntityBusinessCapability}, types{model.EntityProcess}},
		model.RelOfferedIn: {types{model.EntityProduct}, types{model.EntityMarket}},
		model.RelServes:    {types{model.EntityProduct}, types{model.EntityCustomer}},
		model.RelSegmentOf: {types{model.EntityCustomer}, types{model.EntityMarket}},
		model.RelBuiltOn:   {types{model.EntityProduct}, types{model.EntitySystem}},
		model.RelDelivers:  {types{model.EntityProject}, types{model.EntityProduct, model.EntitySystem}},
		model.RelIncludes:  {types{model.EntityInitiative}, types{model.EntityProject}},
		model.RelSponsors:  {types{model.EntityPerson}, types{model.EntityProject, model.EntityInitiative}},
		model.RelWorksOn:   {types{model.EntityPerson}, types{model.EntityProject}},
		model.RelAdvances:  {types{model.EntityInitiative}, types{model.EntityBusinessCapability}},
	})
}
