package masterdata

import "github.com/shopspring/decimal"

// TransactionRow is a sales transaction as listed on the report page and fed
// into the notification poller.
type TransactionRow struct {
	ID            string           `json:"id"`
	Code          string           `json:"code"`
	CashierName   string           `json:"cashierName"`
	TableLabel    string           `json:"tableLabel"`
	Total         *decimal.Decimal `json:"total"`
	PaymentMethod string           `json:"paymentMethod"`
	Status        string           `json:"status"`
	CreatedAt     string           `json:"createdAt"`
}

// NormalizeTransactions reshapes the transactions payload into report rows.
func NormalizeTransactions(payload any) []TransactionRow {
	raws := UnwrapArray(payload)
	rows := make([]TransactionRow, 0, len(raws))
	for i, raw := range raws {
		obj := asObject(raw)
		row := TransactionRow{
			Code:          "-",
			CashierName:   "-",
			TableLabel:    "-",
			PaymentMethod: "-",
			Status:        "-",
			CreatedAt:     "-",
		}

		if v, ok := pickFirst(obj, "id", "transactionId", "transaction_id"); ok {
			row.ID = keyOf(v)
		} else {
			row.ID = syntheticID(i)
		}
		if v, ok := pickFirst(obj, "code", "transactionCode", "transaction_code", "invoiceNumber", "invoice_number"); ok {
			row.Code = toString(v)
		}
		if v, ok := pickFirst(obj, "cashierName", "cashier_name", "cashier"); ok {
			switch cashier := v.(type) {
			case string:
				row.CashierName = cashier
			case map[string]any:
				if nameVal, ok := pickFirst(cashier, "name", "fullName", "full_name"); ok {
					row.CashierName = toString(nameVal)
				}
			}
		}
		if v, ok := pickFirst(obj, "tableName", "table_name", "tableNumber", "table_number", "table"); ok {
			row.TableLabel = toString(v)
		}
		if v, ok := pickFirst(obj, "total", "grandTotal", "grand_total", "totalAmount", "total_amount", "amount"); ok {
			if d, parsed := toDecimal(v); parsed {
				row.Total = &d
			}
		}
		if v, ok := pickFirst(obj, "paymentMethod", "payment_method", "payment"); ok {
			row.PaymentMethod = toString(v)
		}
		if v, ok := pickFirst(obj, "status", "state", "transactionStatus", "transaction_status"); ok {
			row.Status = toString(v)
		}
		if v, ok := pickFirst(obj, "createdAt", "created_at", "date", "transactionDate", "transaction_date"); ok {
			row.CreatedAt = toString(v)
		}
		rows = append(rows, row)
	}
	return rows
}

// KitchenItem is one line of a kitchen order ticket.
type KitchenItem struct {
	Name string `json:"name"`
	Qty  int    `json:"qty"`
	Note string `json:"note"`
}

// KitchenOrderRow is an order as shown on the kitchen display.
type KitchenOrderRow struct {
	ID         string        `json:"id"`
	Code       string        `json:"code"`
	TableLabel string        `json:"tableLabel"`
	Items      []KitchenItem `json:"items"`
	Status     string        `json:"status"`
	CreatedAt  string        `json:"createdAt"`
}

// NormalizeKitchenOrders reshapes the kitchen orders payload. Order items may
// be nested under several keys and themselves arrive in loose shapes.
func NormalizeKitchenOrders(payload any) []KitchenOrderRow {
	raws := UnwrapArray(payload)
	rows := make([]KitchenOrderRow, 0, len(raws))
	for i, raw := range raws {
		obj := asObject(raw)
		row := KitchenOrderRow{
			Code:       "-",
			TableLabel: "-",
			Items:      []KitchenItem{},
			Status:     "-",
			CreatedAt:  "-",
		}

		if v, ok := pickFirst(obj, "id", "orderId", "order_id"); ok {
			row.ID = keyOf(v)
		} else {
			row.ID = syntheticID(i)
		}
		if v, ok := pickFirst(obj, "code", "orderCode", "order_code", "orderNumber", "order_number"); ok {
			row.Code = toString(v)
		}
		if v, ok := pickFirst(obj, "tableName", "table_name", "tableNumber", "table_number", "table"); ok {
			row.TableLabel = toString(v)
		}
		if v, ok := pickFirst(obj, "status", "state", "orderStatus", "order_status"); ok {
			row.Status = toString(v)
		}
		if v, ok := pickFirst(obj, "createdAt", "created_at", "orderedAt", "ordered_at"); ok {
			row.CreatedAt = toString(v)
		}
		if v, ok := pickFirst(obj, "items", "orderItems", "order_items", "details"); ok {
			for _, itemRaw := range UnwrapArray(v) {
				itemObj := asObject(itemRaw)
				item := KitchenItem{Name: "-", Qty: 1}
				if nameVal, ok := pickFirst(itemObj, "name", "menuName", "menu_name", "productName", "product_name"); ok {
					item.Name = toString(nameVal)
				}
				if qtyVal, ok := pickFirst(itemObj, "qty", "quantity", "amount"); ok {
					if n, parsed := toNumber(qtyVal); parsed && n > 0 {
						item.Qty = int(n)
					}
				}
				if noteVal, ok := pickFirst(itemObj, "note", "notes", "remark"); ok {
					item.Note = toString(noteVal)
				}
				row.Items = append(row.Items, item)
			}
		}
		rows = append(rows, row)
	}
	return rows
}
