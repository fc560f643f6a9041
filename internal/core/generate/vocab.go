package generate

import "github.com/agenthands/orggraph/internal/core/model"

type city struct {
	name    string
	country string
}

type region struct {
	name         string
	code         string
	timezone     string
	countryCount int
	cities       []city
}

var regions = []region{
	{"North America", "NA", "America/New_York", 3, []city{
		{"New York", "United States"}, {"Toronto", "Canada"}, {"Austin", "United States"}, {"Chicago", "United States"}, {"Mexico City", "Mexico"},
	}},
	{"Western Europe", "WEU", "Europe/London", 8, []city{
		{"London", "United Kingdom"}, {"Paris", "France"}, {"Amsterdam", "Netherlands"}, {"Dublin", "Ireland"}, {"Madrid", "Spain"},
	}},
	{"Asia Pacific", "APAC", "Asia/Singapore", 10, []city{
		{"Singapore", "Singapore"}, {"Sydney", "Australia"}, {"Hong Kong", "China"}, {"Seoul", "South Korea"}, {"Bangalore", "India"},
	}},
	{"Central Europe", "CEU", "Europe/Berlin", 6, []city{
		{"Berlin", "Germany"}, {"Munich", "Germany"}, {"Warsaw", "Poland"}, {"Prague", "Czechia"}, {"Vienna", "Austria"},
	}},
	{"Latin America", "LATAM", "America/Sao_Paulo", 7, []city{
		{"Sao Paulo", "Brazil"}, {"Bogota", "Colombia"}, {"Santiago", "Chile"}, {"Buenos Aires", "Argentina"}, {"Lima", "Peru"},
	}},
	{"Middle East and Africa", "MEA", "Asia/Dubai", 9, []city{
		{"Dubai", "United Arab Emirates"}, {"Johannesburg", "South Africa"}, {"Tel Aviv", "Israel"}, {"Nairobi", "Kenya"}, {"Riyadh", "Saudi Arabia"},
	}},
	{"Nordics", "NORD", "Europe/Stockholm", 5, []city{
		{"Stockholm", "Sweden"}, {"Oslo", "Norway"}, {"Copenhagen", "Denmark"}, {"Helsinki", "Finland"}, {"Reykjavik", "Iceland"},
	}},
	{"Japan", "JPN", "Asia/Tokyo", 1, []city{
		{"Tokyo", "Japan"}, {"Osaka", "Japan"}, {"Nagoya", "Japan"}, {"Fukuoka", "Japan"}, {"Sapporo", "Japan"},
	}},
}

// functions are department functions in creation order; the first maps to
// the executive's home department.
var functions = []string{
	"Engineering", "Operations", "Sales", "Customer Support", "Finance", "Human Resources",
	"Legal", "Security", "Marketing", "Product", "Data", "Procurement",
	"Facilities", "Risk and Compliance", "Internal Audit", "Research",
}

var departmentQualifiers = []string{"Platform", "Enterprise", "Regional", "Strategic", "Global"}

var functionTitles = map[string][]string{
	"Engineering":         {"software engineer", "site reliability engineer", "QA analyst", "solutions architect"},
	"Operations":          {"operations analyst", "service delivery coordinator", "logistics planner"},
	"Sales":               {"account executive", "sales engineer", "business development representative"},
	"Customer Support":    {"support specialist", "customer success manager", "escalation engineer"},
	"Finance":             {"financial analyst", "accountant", "treasury analyst"},
	"Human Resources":     {"HR business partner", "recruiter", "compensation analyst"},
	"Legal":               {"counsel", "paralegal", "contracts specialist"},
	"Security":            {"security analyst", "security engineer", "identity administrator"},
	"Marketing":           {"marketing specialist", "content strategist", "brand designer"},
	"Product":             {"product manager", "product designer", "UX researcher"},
	"Data":                {"data engineer", "data scientist", "analytics engineer"},
	"Procurement":         {"buyer", "category manager", "vendor analyst"},
	"Facilities":          {"facilities coordinator", "workplace technician"},
	"Risk and Compliance": {"compliance analyst", "risk analyst", "privacy officer"},
	"Internal Audit":      {"internal auditor", "IT auditor"},
	"Research":            {"research scientist", "research engineer"},
}

var roleLevels = []string{"Associate", "Mid", "Senior", "Lead", "Manager", "Director"}

var firstNames = []string{
	"Ava", "Liam", "Noah", "Emma", "Olivia", "Mateo", "Sofia", "Lucas", "Amara", "Kenji",
	"Priya", "Omar", "Ingrid", "Diego", "Chloe", "Wei", "Fatima", "Jonas", "Leila", "Marcus",
	"Hana", "Tomas", "Aisha", "Elena", "Ravi", "Nora", "Samuel", "Yara", "Felix", "Mei",
	"Kofi", "Clara", "Arjun", "Lucia", "Erik", "Zara", "Hugo", "Ines", "Daniel", "Sana",
}

var lastNames = []string{
	"Anderson", "Okafor", "Nakamura", "Garcia", "Muller", "Rossi", "Kowalski", "Haddad", "Silva", "Chen",
	"Patel", "Johansson", "Dubois", "Kim", "Novak", "Ibrahim", "Schmidt", "Moreau", "Costa", "Larsen",
	"Tanaka", "Fischer", "Mensah", "Alvarez", "Berg", "Singh", "Petrov", "Walsh", "Romero", "Yilmaz",
	"Lindqvist", "Osei", "Bauer", "Sato", "Herrera", "Nowak", "Kaur", "Byrne", "Ahmed", "Vogel",
}

var teamNouns = []string{
	"platform", "payments", "identity", "onboarding", "analytics", "reliability", "billing", "integrations",
	"mobile", "core services", "reporting", "automation", "incident response", "enablement", "growth", "tooling",
}

var teamSuffixes = []string{"team", "squad", "pod", "crew"}

var teamTypes = []string{"Delivery", "Platform", "Operations", "Security", "Support", "Incident Response"}

var siteTypes = []string{model.SiteOffice, model.SiteDataCenter, model.SiteWarehouse, model.SiteLab, model.SiteBranch}

var systemPrefixes = []string{
	"customer", "order", "payment", "inventory", "identity", "billing", "ledger", "claims",
	"analytics", "document", "pricing", "supply chain", "telemetry", "messaging", "scheduling", "fraud",
}

type systemKind struct {
	suffixes     []string
	technologies []string
	hosting      []string
}

var systemKinds = map[string]systemKind{
	"Application": {
		[]string{"portal", "service", "app", "hub", "manager"},
		[]string{"Java", "Spring Boot", "Go", "Python", "Django", "React", "Node.js", "Express", "PostgreSQL", "Redis", "Kafka"},
		[]string{"Cloud", "On-Premises", "Hybrid"},
	},
	"Database": {
		[]string{"database", "data store", "warehouse"},
		[]string{"PostgreSQL", "Oracle", "MySQL", "MongoDB", "Cassandra", "Snowflake"},
		[]string{"Cloud", "On-Premises"},
	},
	"Platform": {
		[]string{"platform", "engine"},
		[]string{"Kubernetes", "Kafka", "Terraform", "Go", "Envoy", "Istio"},
		[]string{"Cloud", "Hybrid"},
	},
	"Appliance": {
		[]string{"firewall", "load balancer", "gateway", "HSM"},
		[]string{"Embedded Linux", "FPGA", "Proprietary OS", "IPsec", "SNMP"},
		[]string{"On-Premises"},
	},
	"SaaS": {
		[]string{"cloud", "suite"},
		[]string{"Salesforce", "Workday", "ServiceNow", "React", "Next.js"},
		[]string{"SaaS"},
	},
	"Infrastructure": {
		[]string{"cluster", "mesh", "backbone"},
		[]string{"VMware", "Kubernetes", "Linux", "Ansible", "Terraform"},
		[]string{"On-Premises", "Cloud"},
	},
}

// systemTypes fixes the draw order over systemKinds.
var systemTypes = []string{"Application", "Database", "Platform", "Appliance", "SaaS", "Infrastructure"}

var networkZones = []string{"DMZ", "Internal", "Restricted", "Management", "Guest"}

var protocols = []string{"REST", "gRPC", "SFTP", "Kafka", "SOAP", "MQ"}

var frequencies = []string{"Real-time", "Hourly", "Daily", "Weekly", "Batch"}

var dataDomains = []string{
	"Customer", "Finance", "Product", "Employee", "Supplier", "Operations", "Risk",
	"Marketing", "Sales", "Security", "Compliance", "Logistics", "Research", "Legal",
}

// piiDomains are data domains whose assets usually hold personal data.
var piiDomains = map[string]bool{"Customer": true, "Employee": true, "Marketing": true, "Sales": true}

var assetNouns = []string{"records", "master data", "ledger", "events", "archive", "profiles", "transactions", "reports"}

var assetFormats = []string{"Relational", "Parquet", "JSON", "CSV", "Document", "Stream"}

type regulation struct {
	code         string
	name         string
	jurisdiction string
	regulator    string
	category     string
	year         int
}

var regulationsByIndustry = map[string][]regulation{
	IndustryFinancial: {
		{"SOX", "Sarbanes-Oxley Act", "United States", "SEC", "Financial Reporting", 2002},
		{"PCI-DSS", "Payment Card Industry Data Security Standard", "Global", "PCI SSC", "Payments", 2004},
		{"GLBA", "Gramm-Leach-Bliley Act", "United States", "FTC", "Privacy", 1999},
		{"BASEL-III", "Basel III Capital Framework", "Global", "BCBS", "Prudential", 2013},
		{"DORA", "Digital Operational Resilience Act", "European Union", "ESAs", "Operational Resilience", 2025},
		{"GDPR", "General Data Protection Regulation", "European Union", "EDPB", "Privacy", 2018},
		{"MIFID-II", "Markets in Financial Instruments Directive II", "European Union", "ESMA", "Conduct", 2018},
		{"AMLD6", "Sixth Anti-Money Laundering Directive", "European Union", "EBA", "Financial Crime", 2021},
	},
	IndustryHealthcare: {
		{"HIPAA", "Health Insurance Portability and Accountability Act", "United States", "HHS", "Privacy", 1996},
		{"HITECH", "Health Information Technology for Economic and Clinical Health Act", "United States", "HHS", "Privacy", 2009},
		{"GDPR", "General Data Protection Regulation", "European Union", "EDPB", "Privacy", 2018},
		{"21-CFR-11", "FDA 21 CFR Part 11", "United States", "FDA", "Records Integrity", 1997},
		{"SOC2", "SOC 2 Trust Services Criteria", "Global", "AICPA", "Assurance", 2010},
		{"ISO27001", "ISO/IEC 27001", "Global", "ISO", "Information Security", 2022},
	},
	IndustryTechnology: {
		{"GDPR", "General Data Protection Regulation", "European Union", "EDPB", "Privacy", 2018},
		{"CCPA", "California Consumer Privacy Act", "United States", "CPPA", "Privacy", 2020},
		{"SOC2", "SOC 2 Trust Services Criteria", "Global", "AICPA", "Assurance", 2010},
		{"ISO27001", "ISO/IEC 27001", "Global", "ISO", "Information Security", 2022},
		{"EU-AI-ACT", "EU Artificial Intelligence Act", "European Union", "AI Office", "AI Governance", 2024},
		{"NIS2", "Network and Information Security Directive 2", "European Union", "ENISA", "Cybersecurity", 2024},
	},
	IndustryManufacturing: {
		{"ISO9001", "ISO 9001 Quality Management", "Global", "ISO", "Quality", 2015},
		{"ISO27001", "ISO/IEC 27001", "Global", "ISO", "Information Security", 2022},
		{"REACH", "Registration, Evaluation, Authorisation and Restriction of Chemicals", "European Union", "ECHA", "Product Safety", 2007},
		{"OSHA", "Occupational Safety and Health Act", "United States", "OSHA", "Workplace Safety", 1970},
		{"GDPR", "General Data Protection Regulation", "European Union", "EDPB", "Privacy", 2018},
		{"NIS2", "Network and Information Security Directive 2", "European Union", "ENISA", "Cybersecurity", 2024},
	},
	IndustryRetail: {
		{"PCI-DSS", "Payment Card Industry Data Security Standard", "Global", "PCI SSC", "Payments", 2004},
		{"GDPR", "General Data Protection Regulation", "European Union", "EDPB", "Privacy", 2018},
		{"CCPA", "California Consumer Privacy Act", "United States", "CPPA", "Privacy", 2020},
		{"SOC2", "SOC 2 Trust Services Criteria", "Global", "AICPA", "Assurance", 2010},
		{"CPSA", "Consumer Product Safety Act", "United States", "CPSC", "Product Safety", 1972},
	},
}

var policyAreas = []string{
	"Information Security", "Acceptable Use", "Data Retention", "Access Control", "Incident Response",
	"Business Continuity", "Vendor Management", "Privacy", "Change Management", "Encryption",
	"Code of Conduct", "Remote Work", "Asset Management", "Logging and Monitoring",
}

var controlThemes = []string{
	"multi-factor authentication", "quarterly access review", "encryption at rest", "privileged access monitoring",
	"change approval", "vulnerability scanning", "security awareness training", "backup verification",
	"network segmentation", "log retention", "endpoint protection", "vendor due diligence",
	"data loss prevention", "segregation of duties", "patch management", "incident escalation",
}

var controlFrameworks = []string{"NIST CSF", "ISO 27001", "CIS Controls", "COBIT"}

var riskScenarios = map[string][]string{
	"Operational":  {"prolonged outage of order processing", "key person dependency in operations", "capacity shortfall during peak season"},
	"Cyber":        {"ransomware encryption of core platforms", "credential theft through phishing", "exposure of cloud storage buckets"},
	"Compliance":   {"late regulatory filing", "incomplete records of processing", "breach of data residency obligations"},
	"Financial":    {"foreign exchange exposure on vendor payments", "revenue leakage in billing", "budget overrun on strategic projects"},
	"Strategic":    {"loss of share to a new market entrant", "failed platform migration", "misaligned product roadmap"},
	"Third Party":  {"critical vendor insolvency", "subprocessor data mishandling", "single-source supplier disruption"},
	"Reputational": {"public disclosure of a security incident", "negative press on labour practices", "service degradation visible to customers"},
}

// riskCategories fixes the draw order over riskScenarios.
var riskCategories = []string{"Operational", "Cyber", "Compliance", "Financial", "Strategic", "Third Party", "Reputational"}

var threatActors = []string{"Nation State", "Cybercriminal", "Insider", "Hacktivist", "Competitor", "Opportunistic"}

var attackVectors = []struct {
	name      string
	technique string
}{
	{"phishing", "T1566"}, {"ransomware", "T1486"}, {"supply chain compromise", "T1195"},
	{"credential stuffing", "T1110"}, {"denial of service", "T1498"}, {"exploitation of public-facing application", "T1190"},
	{"valid account abuse", "T1078"}, {"data exfiltration", "T1041"},
}

var motivations = []string{"Financial gain", "Espionage", "Disruption", "Ideology", "Grievance"}

var components = []string{"OpenSSL", "Log4j", "nginx", "OpenSSH", "glibc", "Apache Struts", "jQuery", "Spring Framework", "kernel", "libxml2"}

var vendorPrefixes = []string{"Northwind", "Bluepeak", "Ironclad", "Meridian", "Silverline", "Keystone", "Brightwave", "Cobalt", "Evergreen", "Summit", "Harbor", "Vertex"}

var vendorSuffixes = []string{"Systems", "Solutions", "Partners", "Technologies", "Consulting", "Logistics", "Networks", "Labs"}

var serviceCategories = []string{"Cloud Hosting", "Consulting", "Software", "Hardware", "Logistics", "Payments", "Managed Security", "Staffing"}

var capabilityNames = []string{
	"customer onboarding", "order management", "billing and invoicing", "identity and access management",
	"financial planning", "talent acquisition", "supply planning", "product development",
	"customer service", "risk management", "regulatory reporting", "data management",
	"marketing campaigns", "partner management", "incident management", "pricing strategy",
	"fraud detection", "workforce planning", "procurement", "asset management",
	"quality assurance", "sales enablement", "treasury", "research and innovation",
	"sustainability reporting", "knowledge management", "contract management", "field service",
	"logistics", "brand management",
}

var capabilityMaturity = []string{"Initial", "Developing", "Defined", "Managed", "Optimizing"}

var processVerbs = []string{"approve", "reconcile", "onboard", "review", "provision", "escalate", "forecast", "audit", "renew", "resolve"}

var processObjects = []string{"purchase orders", "vendor invoices", "new employees", "access requests", "customer tickets", "quarterly close", "production changes", "contracts", "security incidents", "capacity plans"}

var segments = []string{"Enterprise", "Mid-Market", "SMB", "Public Sector", "Consumer"}

var customerPrefixes = []string{"Acme", "Globex", "Initech", "Umbrella", "Stark", "Wayne", "Hooli", "Vandelay", "Tyrell", "Soylent", "Cyberdyne", "Massive Dynamic"}

var customerSuffixes = []string{"Holdings", "Group", "Industries", "Retail", "Health", "Bank", "Logistics", "Energy"}

var productLines = []string{"Core Platform", "Analytics", "Payments", "Security", "Mobile", "Integrations"}

var productNouns = []string{"insights", "pay", "shield", "connect", "flow", "vault", "pulse", "sync", "atlas", "beacon"}

var lifecycleStages = []string{"Introduction", "Growth", "Maturity", "Decline"}

var initiativeThemes = []string{"Digital Transformation", "Cost Optimization", "Cloud Migration", "Zero Trust", "Customer Experience", "Sustainability", "AI Enablement", "Data Modernization"}

var methodologies = []string{"Agile", "Waterfall", "Hybrid"}
