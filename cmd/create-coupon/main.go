package main

import (
	"context"
	"fmt"
	"os"
	"strconv"

	"go.uber.org/zap"

	"github.com/anwarshop/storefront/internal/admin"
	"github.com/anwarshop/storefront/internal/config"
	"github.com/anwarshop/storefront/internal/docstore"
	"github.com/anwarshop/storefront/internal/domain"
)

func main() {
	if len(os.Args) < 4 {
		fmt.Println("Usage: go run cmd/create-coupon/main.go <code> <type> <discount>")
		fmt.Println("Example: go run cmd/create-coupon/main.go SUMMER20 percentage 20")
		os.Exit(1)
	}

	code := os.Args[1]
	couponType := domain.CouponType(os.Args[2])
	discount, err := strconv.ParseFloat(os.Args[3], 64)
	if err != nil || discount <= 0 {
		fmt.Fprintf(os.Stderr, "Discount must be a positive number, got %q\n", os.Args[3])
		os.Exit(1)
	}
	if !couponType.IsValid() {
		fmt.Fprintf(os.Stderr, "Type must be percentage or fixed, got %q\n", os.Args[2])
		os.Exit(1)
	}
	if couponType == domain.CouponTypePercentage && discount > 100 {
		fmt.Fprintln(os.Stderr, "Percentage discount cannot exceed 100")
		os.Exit(1)
	}

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	logger, _ := zap.NewDevelopment()
	defer logger.Sync()

	client := docstore.NewClient(cfg.Store, logger)
	svc := admin.NewService(client, logger)

	coupon, err := svc.CreateCoupon(context.Background(), domain.Coupon{
		Code:     code,
		Type:     couponType,
		Discount: discount,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create coupon: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("✅ Coupon created successfully!\n\n")
	fmt.Printf("Coupon ID: %s\n", coupon.ID)
	fmt.Printf("Code: %s\n", coupon.Code)
	fmt.Printf("Type: %s\n", coupon.Type)
	fmt.Printf("Discount: %g\n", coupon.Discount)
	fmt.Printf("\nCustomers can apply this code at checkout. Matching is case-insensitive.\n")
}
