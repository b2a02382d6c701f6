package model

// Chunk is one overlapping word window of a document's normalized text.
// Chunk hashes are globally unique in the store: identical text appearing in
// two documents is only persisted for the first writer.
type Chunk struct {
	DocumentID  string `json:"document_id"`
	ChunkIndex  int    `json:"chunk_index"`
	Text        string `json:"text"`
	ContentHash string `json:"content_hash"`
	WordCount   int    `json:"word_count"`
}
