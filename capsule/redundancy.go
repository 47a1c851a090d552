package capsule

import (
	"strings"

	"capsule-os/models"
)

const maxDoNotBuy = 3

// ComputeDoNotBuy lists new item categories the closet already covers, in item order, at most 3
func ComputeDoNotBuy(closet []models.ClosetItem, items []models.CapsuleItem) []string {
	doNotBuy := make([]string, 0, maxDoNotBuy)
	if len(closet) == 0 {
		return doNotBuy
	}

	owned := make(map[string]bool, len(closet))
	for _, c := range closet {
		owned[strings.ToLower(strings.TrimSpace(c.Category))] = true
	}

	for _, item := range items {
		if owned[strings.ToLower(strings.TrimSpace(item.Category))] {
			doNotBuy = append(doNotBuy, item.Category)
			if len(doNotBuy) == maxDoNotBuy {
				break
			}
		}
	}
	return doNotBuy
}
