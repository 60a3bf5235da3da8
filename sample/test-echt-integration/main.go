package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"

	"github.com/echtwell/echt-crm/internal/infra/integration/echt"
)

// Manual smoke test for the echt.im gateway. Sends one real WhatsApp message
// to TEST_PHONE, so run it against a number you own.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("⚠️  .env not found, using system environment variables")
	}

	if os.Getenv("ECHT_API_TOKEN") == "" {
		log.Fatal("❌ ECHT_API_TOKEN must be set in .env")
	}

	phone := os.Getenv("TEST_PHONE")
	if phone == "" {
		log.Fatal("❌ TEST_PHONE must be set in .env")
	}

	client := echt.NewClient(os.Getenv("ECHT_API_URL"), os.Getenv("ECHT_API_TOKEN"))

	normalized := echt.FormatPhoneNumber(phone)
	fmt.Println("🔄 Sending test message via echt.im...")
	fmt.Printf("📋 Destination: %s (normalized: %s)\n\n", phone, normalized)

	err := client.SendText(context.Background(), phone, "Hello from the ECHT CRM integration smoke test!")
	if err != nil {
		log.Fatalf("Failed to send message via echt.im: %v", err)
	}

	fmt.Println("Message sent successfully!")
	fmt.Printf(" Check WhatsApp on %s\n", normalized)
}
