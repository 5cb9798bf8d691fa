package export

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"sort"
	"strings"

	"frontdesk-api/internal/store"
)

var ErrUnknownResource = errors.New("export: unknown resource")

// resourceCollections maps the public resource names onto collections.
var resourceCollections = map[string]string{
	"leads":    "lead",
	"chats":    "chatmessage",
	"bookings": "booking",
	"tickets":  "supportticket",
	"payments": "paymentrecord",
	"messages": "smsmessage",
	"calls":    "calllog",
}

// Service renders a collection as CSV for spreadsheet-side analytics.
type Service struct {
	store store.Store
}

func NewService(s store.Store) *Service { return &Service{store: s} }

// Resources lists the exportable resource names, sorted.
func Resources() []string {
	out := make([]string, 0, len(resourceCollections))
	for k := range resourceCollections {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// Export fetches up to limit documents and renders them as CSV. The header
// is the sorted union of all keys across the documents; documents are
// schemaless, so rows may leave columns empty.
func (s *Service) Export(ctx context.Context, resource string, limit int) (string, error) {
	if s.store == nil {
		return "", errors.New("export: store not configured")
	}
	coll, ok := resourceCollections[resource]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownResource, resource)
	}
	if limit <= 0 {
		limit = 1000
	}

	docs, err := s.store.Find(ctx, coll, nil, limit)
	if err != nil {
		return "", err
	}
	if len(docs) == 0 {
		return "", nil
	}

	keySet := map[string]struct{}{}
	for _, d := range docs {
		for k := range d {
			keySet[k] = struct{}{}
		}
	}
	header := make([]string, 0, len(keySet))
	for k := range keySet {
		header = append(header, k)
	}
	sort.Strings(header)

	var buf strings.Builder
	w := csv.NewWriter(&buf)
	if err := w.Write(header); err != nil {
		return "", err
	}
	for _, d := range docs {
		row := make([]string, len(header))
		for i, k := range header {
			row[i] = cellString(d[k])
		}
		if err := w.Write(row); err != nil {
			return "", err
		}
	}
	w.Flush()
	return buf.String(), w.Error()
}

func cellString(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	default:
		return fmt.Sprintf("%v", x)
	}
}
