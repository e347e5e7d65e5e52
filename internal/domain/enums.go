package domain

// ProposalTypes enumerates the accepted values of the frontmatter "type" field.
var ProposalTypes = []string{
	"Meta-Governance",
	"Governance",
	"Process",
	"Request for Enhancement",
	"Software",
}

// Networks enumerates the accepted values of the frontmatter "network" field.
var Networks = []string{
	"Ethereum",
	"Optimism",
	"Ethereum & Optimism",
	"Unknown",
}
