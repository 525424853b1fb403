package domain

// Chunk is the atomic unit of retrieval: a bounded span of one source
// document, embedded once at index-build time and immutable afterwards.
type Chunk struct {
	ID        string
	Text      string
	Source    string
	Heading   string
	Part      int
	Embedding []float32
}

// Index is the loaded, read-only collection served at query time. All
// chunks carry vectors produced by the single recorded model.
type Index struct {
	Model  string
	Chunks []Chunk
}

// RankedResult pairs a chunk with its raw cosine similarity and the
// weighted score used for ordering. Ephemeral, produced per query.
type RankedResult struct {
	Chunk         *Chunk
	RawScore      float64
	WeightedScore float64
}

// SearchCall is the canonical, validated shape of a search request.
type SearchCall struct {
	Query string
	TopK  int
}

// FetchCall is the canonical, validated shape of a fetch request.
type FetchCall struct {
	ID string
}

// SearchResultItem is the display record returned per ranked chunk.
type SearchResultItem struct {
	ID    string `json:"id"`
	Title string `json:"title"`
	URL   string `json:"url"`
}

// SearchResponse is the search operation's success payload.
type SearchResponse struct {
	Results []SearchResultItem `json:"results"`
}

// FetchResponse is the fetch operation's payload. A miss is a normal,
// structured outcome with Title "NOT_FOUND" and metadata error=not_found,
// never a processing error.
type FetchResponse struct {
	ID       string            `json:"id"`
	Title    string            `json:"title"`
	Text     string            `json:"text"`
	URL      string            `json:"url"`
	Metadata map[string]string `json:"metadata"`
}
