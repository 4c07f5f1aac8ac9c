package tool

import "fsgate/internal/domain"

// AllTools constructs every filesystem tool against the shared dependencies.
// The order here is the order clients see them advertised in.
func AllTools(deps Deps) []domain.Tool {
	return []domain.Tool{
		NewReadFileTool(deps),
		NewReadMultipleFilesTool(deps),
		NewWriteFileTool(deps),
		NewEditFileTool(deps),
		NewCreateDirectoryTool(deps),
		NewListDirectoryTool(deps),
		NewDirectoryTreeTool(deps),
		NewMoveFileTool(deps),
		NewSearchFilesTool(deps),
		NewGetFileInfoTool(deps),
		NewListAllowedDirectoriesTool(deps),
	}
}
