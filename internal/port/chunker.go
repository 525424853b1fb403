package port

import "docrag/internal/domain"

type Chunker interface {
	Chunk(source, content string) []domain.Chunk
}
