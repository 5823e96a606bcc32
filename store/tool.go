package store

// AITool is one entry in the MOA tool catalog.
type AITool struct {
	ID          int32
	Name        string
	Category    string
	Price       string // free / freemium / paid
	HasAPI      bool
	Features    []string
	Description string
	Rating      float64
	ServiceID   string

	// Embedding of the description, populated by the embedder. Only the
	// postgres driver can search by it.
	Embedding []float32
}

// FindAITool filters a catalog listing. Nil fields are unconstrained.
type FindAITool struct {
	ID       *int32
	Category *string
	Price    *string
	Features []string
	Query    *string // substring match on name/description
	Limit    *int
}

// AIToolWithScore pairs a tool with a vector-search similarity score.
type AIToolWithScore struct {
	Tool  *AITool
	Score float64
}
