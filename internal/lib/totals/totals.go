// Package totals вычисляет итоговые суммы документа по его позициям.
package totals

import "github.com/magabrotheeeer/sheets-api/internal/models"

// Compute возвращает суммы брутто, нетто и НДС по всем позициям.
// Пустой список даёт нулевые итоги.
func Compute(items []models.Item) models.Totals {
	var t models.Totals
	for _, item := range items {
		t.Gross += float64(item.PriceGross)
		t.Net += float64(item.PriceNet)
		t.Vat += float64(item.PriceVat)
	}
	return t
}
