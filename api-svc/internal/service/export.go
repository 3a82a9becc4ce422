package service

import (
	"fmt"
	"io"
	"strings"
	"time"

	"bistro-booking/api-svc/internal/domain"

	"github.com/tealeg/xlsx"
)

var orderExportHeader = []string{"Order ID", "Customer", "Email", "Items", "Total", "Status", "Created At", "Completed At"}

// WriteOrdersWorkbook renders one row per order into an xlsx workbook.
func WriteOrdersWorkbook(w io.Writer, orders []domain.Order) error {
	file := xlsx.NewFile()
	sheet, err := file.AddSheet("Orders")
	if err != nil {
		return fmt.Errorf("add sheet: %w", err)
	}

	header := sheet.AddRow()
	for _, title := range orderExportHeader {
		header.AddCell().SetValue(title)
	}

	for _, order := range orders {
		row := sheet.AddRow()
		row.AddCell().SetValue(order.ID)
		row.AddCell().SetValue(order.UserName)
		row.AddCell().SetValue(order.UserEmail)
		row.AddCell().SetValue(describeItems(order.Items))
		row.AddCell().SetValue(order.TotalPrice)
		row.AddCell().SetValue(string(order.Status))
		row.AddCell().SetValue(order.CreatedAt.Format(time.RFC3339))
		completed := ""
		if order.CompletedAt != nil {
			completed = order.CompletedAt.Format(time.RFC3339)
		}
		row.AddCell().SetValue(completed)
	}

	return file.Write(w)
}

func describeItems(items []domain.OrderItem) string {
	parts := make([]string, 0, len(items))
	for _, item := range items {
		title := fmt.Sprintf("#%d (deleted)", item.MenuItemID)
		if item.MenuItem != nil {
			title = item.MenuItem.Title
		}
		parts = append(parts, fmt.Sprintf("%s x%d", title, item.Quantity))
	}
	return strings.Join(parts, ", ")
}
