package model

// Document is an ingested document. Identity is the SHA-256 hash of its
// normalized text; the hash is unique in the store and a document is never
// mutated after ingestion.
type Document struct {
	ID          string `json:"id"`
	Filename    string `json:"filename"`
	ContentHash string `json:"content_hash"`
	ChunkCount  int    `json:"chunk_count"`
	DocType     string `json:"doc_type"`
	Source      string `json:"source"`
	// HolderName and CertNumber are populated for certificate-type documents
	// only, so later submissions can be checked for credential collisions.
	HolderName string `json:"holder_name,omitempty"`
	CertNumber string `json:"cert_number,omitempty"`
	Ctime      int64  `json:"ctime"`
}
