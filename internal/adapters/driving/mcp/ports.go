package mcp

import (
	"github.com/Aya-Alhamwe/Personal-Data-Assistant/internal/core/ports/driving"
)

// Ports aggregates the driving ports used by the MCP server.
type Ports struct {
	// Assistant loads documents into sessions and answers questions.
	Assistant driving.AssistantService

	// Indexer pre-builds indices. Optional; without it index_pdf is not
	// offered.
	Indexer driving.IndexService
}

// Validate ensures all required ports are set.
func (p *Ports) Validate() error {
	if p.Assistant == nil {
		return ErrMissingAssistantService
	}
	return nil
}
