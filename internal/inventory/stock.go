// ABOUTME: Stock status classification and low-stock selection
// ABOUTME: Display rules over stock levels computed by the backend

package inventory

import (
	"github.com/basinventario/inventario-cli/internal/client"
)

// NormalThreshold is the fraction of maximum stock above which stock is normal
const NormalThreshold = 0.8

// StockStatus classifies a stock level for display
type StockStatus int

const (
	StatusMedium StockStatus = iota
	StatusNormal
	StatusLow
)

// String returns the status label
func (s StockStatus) String() string {
	switch s {
	case StatusLow:
		return "Stock Bajo"
	case StatusNormal:
		return "Stock Normal"
	default:
		return "Stock Medio"
	}
}

// Status classifies item. The backend's low-stock alert takes precedence.
func Status(item client.StockItem) StockStatus {
	if item.AlertaStockBajo {
		return StatusLow
	}
	if float64(item.StockActual) > float64(item.StockMaximo)*NormalThreshold {
		return StatusNormal
	}
	return StatusMedium
}

// LowStock returns the items flagged with a low-stock alert, in input order
func LowStock(items []client.StockItem) []client.StockItem {
	var low []client.StockItem
	for _, item := range items {
		if item.AlertaStockBajo {
			low = append(low, item)
		}
	}
	return low
}

// FillRatio returns actual/max clamped to [0,1]; 0 when max is unset
func FillRatio(item client.StockItem) float64 {
	if item.StockMaximo <= 0 {
		return 0
	}
	r := float64(item.StockActual) / float64(item.StockMaximo)
	if r < 0 {
		return 0
	}
	if r > 1 {
		return 1
	}
	return r
}
