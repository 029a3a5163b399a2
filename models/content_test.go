package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestContentType_Name(t *testing.T) {
	assert.Equal(t, "Законодательство", ContentTypeLegislation.Name("ru"))
	assert.Equal(t, "Заканадаўства", ContentTypeLegislation.Name("be"))
	assert.Equal(t, "Legislation", ContentTypeLegislation.Name("en"))
	assert.Equal(t, "Информация", ContentTypeInformation.Name("ru"))
	assert.Equal(t, "Інфармацыя", ContentTypeInformation.Name("be"))
	assert.Equal(t, "Information", ContentTypeInformation.Name("en"))

	// unknown locale or type falls back to the code
	assert.Equal(t, "legislation", ContentTypeLegislation.Name("de"))
	assert.Equal(t, "documents", ContentType("documents").Name("ru"))
}

func TestContentType_IsValid(t *testing.T) {
	assert.True(t, ContentTypeLegislation.IsValid())
	assert.True(t, ContentTypeInformation.IsValid())
	assert.False(t, ContentType("documents").IsValid())
	assert.False(t, ContentType("").IsValid())
}

func TestContentTypeTranslations_ReturnsCopy(t *testing.T) {
	tr := ContentTypeTranslations()
	tr[ContentTypeLegislation]["ru"] = "changed"

	assert.Equal(t, "Законодательство", ContentTypeLegislation.Name("ru"))
}

func TestSpecialistContent_TotalFileSize(t *testing.T) {
	c := SpecialistContent{
		UserID: 1,
		Files:  []SpecialistFile{{FileSize: 1024}, {FileSize: 2048}},
	}
	assert.Equal(t, int64(3072), c.TotalFileSize())
	assert.True(t, c.BelongsToUser(1))
	assert.False(t, c.BelongsToUser(2))
}
