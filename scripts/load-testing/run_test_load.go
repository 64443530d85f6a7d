package main

import (
	"flag"
	"fmt"
	"log"
	"time"
)

func main() {
	baseURL := flag.String("url", "http://localhost:8080", "Storefront base URL")
	storefront := flag.String("storefront", "avuryeda", "Storefront variant to shop on")
	profile := flag.String("profile", "", "light, heavy or stress")
	flag.Parse()

	config := &LoadTestConfig{
		BaseURL:             *baseURL,
		Storefront:          *storefront,
		ConcurrentUsers:     100,
		TestDurationSeconds: 60,
		RampUpSeconds:       10,
		CheckoutRatio:       0.3,
	}

	switch *profile {
	case "light":
		config.ConcurrentUsers = 50
		config.TestDurationSeconds = 30
	case "heavy":
		config.ConcurrentUsers = 500
		config.TestDurationSeconds = 300
	case "stress":
		config.ConcurrentUsers = 1000
		config.TestDurationSeconds = 600
	}

	loadTester := NewLoadTester(config)

	fmt.Printf("Configuration:\n")
	fmt.Printf("- Base URL: %s\n", config.BaseURL)
	fmt.Printf("- Storefront: %s\n", config.Storefront)
	fmt.Printf("- Concurrent Users: %d\n", config.ConcurrentUsers)
	fmt.Printf("- Test Duration: %d seconds\n", config.TestDurationSeconds)
	fmt.Printf("- Ramp Up: %d seconds\n", config.RampUpSeconds)
	fmt.Printf("\nStarting test...\n\n")

	metrics, err := loadTester.Run()
	if err != nil {
		log.Fatalf("Load test failed: %v", err)
	}

	metrics.PrintReport()

	timestamp := time.Now().Format("20060102_150405")
	filename := fmt.Sprintf("load_test_results_%s.json", timestamp)
	if err := metrics.SaveToFile(filename); err != nil {
		log.Printf("Failed to save results to file: %v", err)
	} else {
		fmt.Printf("Results saved to: %s\n", filename)
	}
}
