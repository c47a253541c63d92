package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"

	"github.com/redis/go-redis/v9"
)

// Partial document shape, enough to run the ledger checks
type playerDoc struct {
	ID     string `json:"id"`
	Wallet struct {
		Balance      int64 `json:"balance"`
		TotalEarned  int64 `json:"total_earned"`
		TotalSpent   int64 `json:"total_spent"`
		Transactions []struct {
			ID     string `json:"id"`
			Amount int64  `json:"amount"`
		} `json:"transactions"`
	} `json:"wallet"`
}

func main() {
	redisURL := os.Getenv("REDIS_URL")
	if redisURL == "" {
		redisURL = "redis://localhost:6379"
	}

	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		log.Fatal("Failed to parse Redis URL:", err)
	}

	client := redis.NewClient(opt)
	ctx := context.Background()

	// Test connection
	if err := client.Ping(ctx).Err(); err != nil {
		log.Fatal("Failed to connect to Redis:", err)
	}

	fmt.Println("Connected to Redis:", redisURL)
	fmt.Println("Scanning for corrupted player data...")

	iter := client.Scan(ctx, 0, "player:*", 0).Iterator()

	var corruptedKeys []string
	var checkedCount int

	for iter.Next(ctx) {
		key := iter.Val()
		checkedCount++

		data, err := client.Get(ctx, key).Result()
		if err != nil {
			fmt.Printf("Error reading %s: %v\n", key, err)
			continue
		}

		var doc playerDoc
		if err := json.Unmarshal([]byte(data), &doc); err != nil {
			fmt.Printf("✗ Corrupted JSON in %s\n", key)
			corruptedKeys = append(corruptedKeys, key)
			continue
		}

		if reason := checkLedger(doc); reason != "" {
			fmt.Printf("✗ Ledger invariant broken in %s: %s\n", key, reason)
			corruptedKeys = append(corruptedKeys, key)
		}
	}

	if err := iter.Err(); err != nil {
		log.Fatal("Error during scan:", err)
	}

	fmt.Printf("\nChecked %d keys, found %d corrupted entries\n", checkedCount, len(corruptedKeys))

	if len(corruptedKeys) == 0 {
		fmt.Println("No corrupted data found!")
		return
	}

	fmt.Println("\nCorrupted keys:")
	for _, key := range corruptedKeys {
		fmt.Printf("  - %s\n", key)
	}

	// Ask for confirmation before deletion
	fmt.Print("\nDo you want to DELETE these corrupted entries? (yes/no): ")
	var response string
	fmt.Scanln(&response)

	if response == "yes" {
		for _, key := range corruptedKeys {
			if err := client.Del(ctx, key).Err(); err != nil {
				fmt.Printf("Failed to delete %s: %v\n", key, err)
			} else {
				fmt.Printf("Deleted %s\n", key)
			}
		}
		fmt.Println("\nCleanup complete!")
	} else {
		fmt.Println("Aborted - no changes made")
	}
}

// checkLedger verifies that the wallet totals match a replay of the
// transaction rows. An early build wrote balances without the matching
// transaction rows; those documents fail the earned/spent sums.
func checkLedger(doc playerDoc) string {
	if doc.Wallet.Balance < 0 {
		return fmt.Sprintf("negative balance %d", doc.Wallet.Balance)
	}

	var earned, spent int64
	seen := make(map[string]bool)
	for _, tx := range doc.Wallet.Transactions {
		if seen[tx.ID] {
			return fmt.Sprintf("duplicate transaction id %s", tx.ID)
		}
		seen[tx.ID] = true
		if tx.Amount >= 0 {
			earned += tx.Amount
		} else {
			spent += -tx.Amount
		}
	}

	if earned != doc.Wallet.TotalEarned {
		return fmt.Sprintf("total_earned %d does not match ledger sum %d", doc.Wallet.TotalEarned, earned)
	}
	if spent != doc.Wallet.TotalSpent {
		return fmt.Sprintf("total_spent %d does not match ledger sum %d", doc.Wallet.TotalSpent, spent)
	}
	if doc.Wallet.Balance != earned-spent {
		return fmt.Sprintf("balance %d does not match ledger sum %d", doc.Wallet.Balance, earned-spent)
	}
	return ""
}
