package domain

// IngestFile is one source document handed to the ingestion endpoint.
type IngestFile struct {
	Name string
	Data []byte
}

// IngestStats is the backend's report after a successful ingestion.
type IngestStats struct {
	FileCount    int
	ChunkCount   int
	HasTextInput bool
}

// DatasetInfo is the aggregate view of the currently ingested data.
type DatasetInfo struct {
	Text       string
	ChunkCount int
	HasIndex   bool
}

// Chunk is one ingested chunk as reported by the dataset endpoints.
type Chunk struct {
	ID         int
	Page       int
	Title      string
	Content    string
	TokenCount int
}
