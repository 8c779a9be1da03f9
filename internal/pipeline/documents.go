package pipeline

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"lake-demo/internal/domain"
)

// Document is an unstructured text payload stored in the raw zone with
// retrieval metadata.
type Document struct {
	ID        string            `json:"id"`
	Text      string            `json:"text"`
	Hash      string            `json:"hash"`
	CreatedAt time.Time         `json:"created_at"`
	Metadata  map[string]string `json:"metadata"`
}

// StoreDocument writes a document under documents/ in the raw zone and
// returns its generated ID.
func (s *Steps) StoreDocument(ctx context.Context, text string, metadata map[string]string) (string, error) {
	if metadata == nil {
		metadata = map[string]string{}
	}
	sum := sha256.Sum256([]byte(text))
	doc := Document{
		ID:        uuid.New().String(),
		Text:      text,
		Hash:      hex.EncodeToString(sum[:]),
		CreatedAt: time.Now(),
		Metadata:  metadata,
	}
	data, err := json.Marshal(doc)
	if err != nil {
		return "", fmt.Errorf("marshal document: %w", err)
	}
	key := fmt.Sprintf("documents/%s.json", doc.ID)
	if err := s.store.Upload(ctx, domain.ZoneRaw, key, data, "application/json"); err != nil {
		return "", err
	}
	fmt.Fprintf(s.out, "Document stored at %s/%s\n", domain.ZoneRaw, key)
	return doc.ID, nil
}
