package util

import (
	"crypto/md5"
	"encoding/hex"
	"strconv"
	"strings"

	"github.com/weiwei-tsao/catalog-stats/pkg/model"
)

// HashProducts creates an MD5 fingerprint of a catalog covering every product field.
// Strings are quoted so no field value can imitate a separator, and product order is significant.
func HashProducts(products []model.Product) string {
	builder := strings.Builder{}
	for _, p := range products {
		builder.WriteString(strconv.FormatInt(p.ID, 10))
		builder.WriteString("|")
		builder.WriteString(strconv.Quote(p.Title))
		builder.WriteString("|")
		builder.WriteString(formatFloat(p.Price))
		builder.WriteString("|")
		builder.WriteString(strconv.Quote(p.Description))
		builder.WriteString("|")
		builder.WriteString(strconv.Quote(p.Category))
		builder.WriteString("|")
		builder.WriteString(strconv.Quote(p.Image))
		builder.WriteString("|")
		builder.WriteString(formatFloat(p.Rating.Rate))
		builder.WriteString("|")
		builder.WriteString(strconv.Itoa(p.Rating.Count))
		builder.WriteString("\n")
	}
	return hashString(builder.String())
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'g', -1, 64)
}

func hashString(input string) string {
	sum := md5.Sum([]byte(input))
	return hex.EncodeToString(sum[:])
}
