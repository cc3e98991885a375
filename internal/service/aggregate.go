package service

import "github.com/Lixing-Zhang/restaurant-pos/backend/internal/models"

// SummarizeOrders collapses order lines into one entry per product.
//
// lines are expected newest first. They are scanned oldest first, so entries
// appear in the order each product was first ordered. Quantity and total are
// summed; price keeps the value of the first order seen for the product and
// is not recomputed from total and quantity.
func SummarizeOrders(lines []models.OrderLine) []models.ProductSummary {
	summaries := make([]models.ProductSummary, 0)

	for i := len(lines) - 1; i >= 0; i-- {
		line := lines[i]

		idx := -1
		for j := range summaries {
			if summaries[j].ProductID == line.ProductID {
				idx = j
				break
			}
		}

		if idx == -1 {
			summaries = append(summaries, models.ProductSummary{
				ProductID: line.ProductID,
				Name:      line.Name,
				Price:     line.Price,
				Quantity:  line.Quantity,
				Total:     line.Total,
			})
			continue
		}

		summaries[idx].Quantity += line.Quantity
		summaries[idx].Total += line.Total
	}

	return summaries
}
