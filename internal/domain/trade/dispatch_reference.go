package trade

import (
	"fmt"
	"strconv"
	"strings"
)

const salesDispatchPrefix = "ORD-"

// SalesDispatchReference is the dispatch slip reference number of a sales order
func SalesDispatchReference(orderID int64) string {
	return fmt.Sprintf("%s%d", salesDispatchPrefix, orderID)
}

// ParseSalesDispatchReference returns the order id encoded in a sales dispatch reference
func ParseSalesDispatchReference(ref string) (int64, bool) {
	raw, ok := strings.CutPrefix(ref, salesDispatchPrefix)
	if !ok {
		return 0, false
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}
