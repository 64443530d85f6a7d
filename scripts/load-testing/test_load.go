package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math/rand"
	"net/http"
	"net/http/cookiejar"
	"os"
	"os/signal"
	"sort"
	"sync"
	"sync/atomic"
	"syscall"
	"time"
)

type LoadTestConfig struct {
	BaseURL             string
	Storefront          string
	ConcurrentUsers     int
	TestDurationSeconds int
	RampUpSeconds       int
	// CheckoutRatio is the share of shopping rounds that end in checkout.
	CheckoutRatio float64
}

type TestResult struct {
	TotalRequests      int64
	SuccessfulRequests int64
	FailedRequests     int64
	CartOperations     int64
	CheckoutAttempts   int64
	Checkouts          int64
	ResponseTimes      []time.Duration
	Errors             map[string]int64
	mutex              sync.Mutex
}

type PerformanceMetrics struct {
	StartTime           time.Time
	EndTime             time.Time
	TotalDuration       time.Duration
	ThroughputRPS       float64
	SuccessfulRPS       float64
	P50ResponseTime     time.Duration
	P95ResponseTime     time.Duration
	P99ResponseTime     time.Duration
	ErrorRate           float64
	CartOperations      int64
	CheckoutSuccessRate float64
}

type LoadTester struct {
	config    *LoadTestConfig
	result    *TestResult
	transport *http.Transport
	products  []int64
}

type productsResponse struct {
	Data []struct {
		ID int64 `json:"id"`
	} `json:"data"`
}

func NewLoadTester(config *LoadTestConfig) *LoadTester {
	return &LoadTester{
		config: config,
		result: &TestResult{
			ResponseTimes: make([]time.Duration, 0),
			Errors:        make(map[string]int64),
		},
		transport: &http.Transport{
			MaxIdleConns:        1000,
			MaxIdleConnsPerHost: 100,
			MaxConnsPerHost:     200,
		},
	}
}

// newShopper returns a client with its own cookie jar so every simulated
// user keeps a separate session and cart.
func (lt *LoadTester) newShopper() *http.Client {
	jar, _ := cookiejar.New(nil)
	return &http.Client{
		Timeout:   30 * time.Second,
		Transport: lt.transport,
		Jar:       jar,
		CheckRedirect: func(req *http.Request, via []*http.Request) error {
			return http.ErrUseLastResponse
		},
	}
}

func (lt *LoadTester) storefrontURL(path string) string {
	return fmt.Sprintf("%s/storefronts/%s%s", lt.config.BaseURL, lt.config.Storefront, path)
}

func (lt *LoadTester) recordResponse(duration time.Duration, success bool, operation string, err error) {
	lt.result.mutex.Lock()
	defer lt.result.mutex.Unlock()

	atomic.AddInt64(&lt.result.TotalRequests, 1)
	lt.result.ResponseTimes = append(lt.result.ResponseTimes, duration)

	if success {
		atomic.AddInt64(&lt.result.SuccessfulRequests, 1)
		return
	}

	atomic.AddInt64(&lt.result.FailedRequests, 1)
	if err != nil {
		lt.result.Errors[fmt.Sprintf("%s: %s", operation, err.Error())]++
	}
}

func (lt *LoadTester) send(client *http.Client, operation, method, url string, body interface{}) (int, error) {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return 0, err
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequest(method, url, reader)
	if err != nil {
		return 0, err
	}
	req.Header.Set("Content-Type", "application/json")

	start := time.Now()
	resp, err := client.Do(req)
	duration := time.Since(start)

	if err != nil {
		lt.recordResponse(duration, false, operation, err)
		return 0, err
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	success := resp.StatusCode < http.StatusBadRequest
	if !success {
		err = fmt.Errorf("status %d", resp.StatusCode)
	}
	lt.recordResponse(duration, success, operation, err)
	return resp.StatusCode, nil
}

func (lt *LoadTester) loadProducts() error {
	resp, err := lt.newShopper().Get(lt.storefrontURL("/products"))
	if err != nil {
		return fmt.Errorf("failed to get products: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("products returned status %d", resp.StatusCode)
	}

	var payload productsResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return fmt.Errorf("failed to parse products: %w", err)
	}

	for _, p := range payload.Data {
		lt.products = append(lt.products, p.ID)
	}
	if len(lt.products) == 0 {
		return fmt.Errorf("storefront %s has no products", lt.config.Storefront)
	}
	return nil
}

func (lt *LoadTester) simulateUser(ctx context.Context, wg *sync.WaitGroup) {
	defer wg.Done()

	client := lt.newShopper()
	for {
		select {
		case <-ctx.Done():
			return
		default:
			lt.shop(client)
			time.Sleep(time.Duration(rand.Intn(1000)) * time.Millisecond)
		}
	}
}

// shop runs one round: browse, fill the cart, adjust it and sometimes check out.
func (lt *LoadTester) shop(client *http.Client) {
	lt.send(client, "cart", http.MethodGet, lt.storefrontURL("/cart"), nil)

	picks := rand.Intn(3) + 1
	for i := 0; i < picks; i++ {
		id := lt.products[rand.Intn(len(lt.products))]
		status, err := lt.send(client, "add", http.MethodPost, lt.storefrontURL("/cart/items"), map[string]interface{}{
			"id":       id,
			"quantity": rand.Intn(3) + 1,
		})
		if err == nil && status == http.StatusOK {
			atomic.AddInt64(&lt.result.CartOperations, 1)
		}
		time.Sleep(time.Duration(rand.Intn(100)) * time.Millisecond)
	}

	id := lt.products[rand.Intn(len(lt.products))]
	if rand.Intn(2) == 0 {
		lt.send(client, "update", http.MethodPut, lt.storefrontURL(fmt.Sprintf("/cart/items/%d", id)),
			map[string]int{"quantity": rand.Intn(4)})
	} else {
		lt.send(client, "remove", http.MethodDelete, lt.storefrontURL(fmt.Sprintf("/cart/items/%d", id)), nil)
	}

	if rand.Float64() >= lt.config.CheckoutRatio {
		return
	}

	atomic.AddInt64(&lt.result.CheckoutAttempts, 1)
	status, err := lt.send(client, "checkout", http.MethodPost, lt.storefrontURL("/checkout"), map[string]string{
		"name":    "Load Test",
		"phone":   "9876543210",
		"address": "1 Test Street, Chennai",
	})
	if err == nil && status == http.StatusOK {
		atomic.AddInt64(&lt.result.Checkouts, 1)
	}
}

func (lt *LoadTester) Run() (*PerformanceMetrics, error) {
	if err := lt.loadProducts(); err != nil {
		return nil, err
	}

	fmt.Printf("Starting load test with %d concurrent users for %d seconds\n",
		lt.config.ConcurrentUsers, lt.config.TestDurationSeconds)

	ctx, cancel := context.WithTimeout(context.Background(),
		time.Duration(lt.config.TestDurationSeconds)*time.Second)
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		select {
		case <-sigChan:
			fmt.Println("\nReceived interrupt signal, stopping test...")
			cancel()
		case <-ctx.Done():
		}
	}()

	startTime := time.Now()
	var wg sync.WaitGroup

	userInterval := time.Duration(lt.config.RampUpSeconds) * time.Second / time.Duration(lt.config.ConcurrentUsers)

	for i := 0; i < lt.config.ConcurrentUsers; i++ {
		wg.Add(1)
		go lt.simulateUser(ctx, &wg)

		if i < lt.config.ConcurrentUsers-1 {
			time.Sleep(userInterval)
		}
	}

	go lt.monitorProgress(ctx, startTime)

	wg.Wait()
	endTime := time.Now()

	return lt.calculateMetrics(startTime, endTime), nil
}

func (lt *LoadTester) monitorProgress(ctx context.Context, startTime time.Time) {
	ticker := time.NewTicker(5 * time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			elapsed := time.Since(startTime)
			totalReqs := atomic.LoadInt64(&lt.result.TotalRequests)
			successReqs := atomic.LoadInt64(&lt.result.SuccessfulRequests)
			checkouts := atomic.LoadInt64(&lt.result.Checkouts)

			fmt.Printf("[%s] Total: %d, Success: %d, Checkouts: %d, RPS: %.1f\n",
				elapsed.Round(time.Second), totalReqs, successReqs, checkouts,
				float64(totalReqs)/elapsed.Seconds())
		}
	}
}

func (lt *LoadTester) calculateMetrics(startTime, endTime time.Time) *PerformanceMetrics {
	lt.result.mutex.Lock()
	defer lt.result.mutex.Unlock()

	totalDuration := endTime.Sub(startTime)
	totalRequests := atomic.LoadInt64(&lt.result.TotalRequests)
	successfulRequests := atomic.LoadInt64(&lt.result.SuccessfulRequests)

	metrics := &PerformanceMetrics{
		StartTime:      startTime,
		EndTime:        endTime,
		TotalDuration:  totalDuration,
		CartOperations: atomic.LoadInt64(&lt.result.CartOperations),
	}

	if totalDuration.Seconds() > 0 {
		metrics.ThroughputRPS = float64(totalRequests) / totalDuration.Seconds()
		metrics.SuccessfulRPS = float64(successfulRequests) / totalDuration.Seconds()
	}

	if totalRequests > 0 {
		metrics.ErrorRate = float64(atomic.LoadInt64(&lt.result.FailedRequests)) / float64(totalRequests) * 100
	}

	if attempts := atomic.LoadInt64(&lt.result.CheckoutAttempts); attempts > 0 {
		metrics.CheckoutSuccessRate = float64(atomic.LoadInt64(&lt.result.Checkouts)) / float64(attempts) * 100
	}

	if len(lt.result.ResponseTimes) > 0 {
		metrics.P50ResponseTime = calculatePercentile(lt.result.ResponseTimes, 50)
		metrics.P95ResponseTime = calculatePercentile(lt.result.ResponseTimes, 95)
		metrics.P99ResponseTime = calculatePercentile(lt.result.ResponseTimes, 99)
	}

	return metrics
}

func calculatePercentile(durations []time.Duration, percentile int) time.Duration {
	if len(durations) == 0 {
		return 0
	}

	sorted := make([]time.Duration, len(durations))
	copy(sorted, durations)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i] < sorted[j]
	})

	index := int(float64(len(sorted)) * float64(percentile) / 100.0)
	if index >= len(sorted) {
		index = len(sorted) - 1
	}

	return sorted[index]
}

func (pm *PerformanceMetrics) PrintReport() {
	fmt.Printf("STOREFRONT LOAD TEST RESULTS\n")
	fmt.Printf("Test Duration: %v\n", pm.TotalDuration.Round(time.Second))
	fmt.Printf("Start Time: %s\n", pm.StartTime.Format("2006-01-02 15:04:05"))
	fmt.Printf("End Time: %s\n", pm.EndTime.Format("2006-01-02 15:04:05"))
	fmt.Printf("\n")

	fmt.Printf("THROUGHPUT METRICS:\n")
	fmt.Printf("- Total RPS: %.2f requests/second\n", pm.ThroughputRPS)
	fmt.Printf("- Successful RPS: %.2f requests/second\n", pm.SuccessfulRPS)
	fmt.Printf("- Error Rate: %.2f%%\n", pm.ErrorRate)
	fmt.Printf("\n")

	fmt.Printf("RESPONSE TIME METRICS:\n")
	fmt.Printf("- P50 Response Time: %v\n", pm.P50ResponseTime.Round(time.Millisecond))
	fmt.Printf("- P95 Response Time: %v\n", pm.P95ResponseTime.Round(time.Millisecond))
	fmt.Printf("- P99 Response Time: %v\n", pm.P99ResponseTime.Round(time.Millisecond))
	fmt.Printf("\n")

	fmt.Printf("SHOPPING METRICS:\n")
	fmt.Printf("- Items Added: %d\n", pm.CartOperations)
	fmt.Printf("- Checkout Success Rate: %.2f%%\n", pm.CheckoutSuccessRate)
	fmt.Printf("\n")
}

func (pm *PerformanceMetrics) SaveToFile(filename string) error {
	data, err := json.MarshalIndent(pm, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(filename, data, 0644)
}
