package identity

import (
	"strconv"
	"strings"

	hashid "github.com/goliatone/hashid/pkg/hashid"
	"github.com/google/uuid"
)

// UUID derives a deterministic UUID from a stable key using go-hashid.
//
// Callers must ensure key construction prevents cross-entity collisions (prefix by domain/type).
func UUID(key string) uuid.UUID {
	trimmed := strings.TrimSpace(key)
	if trimmed == "" {
		return uuid.Nil
	}
	uid, err := hashid.NewUUID(trimmed, hashid.WithHashAlgorithm(hashid.SHA256), hashid.WithNormalization(true))
	if err != nil || uid == uuid.Nil {
		return uuid.NewSHA1(uuid.NameSpaceOID, []byte(trimmed))
	}
	return uid
}

// TemplateUUID derives the identifier for a built-in page template.
func TemplateUUID(slug string) uuid.UUID {
	return UUID("agencykit-cms:template:" + strings.ToLower(strings.TrimSpace(slug)))
}

// SectionUUID derives the identifier for a seeded template section.
func SectionUUID(templateID uuid.UUID, key string) uuid.UUID {
	return UUID("agencykit-cms:section:" + templateID.String() + ":" + strings.ToLower(strings.TrimSpace(key)))
}

// BlockUUID derives the identifier for a seeded template block.
func BlockUUID(sectionID uuid.UUID, position int) uuid.UUID {
	return UUID("agencykit-cms:block:" + sectionID.String() + ":" + strconv.Itoa(position))
}
