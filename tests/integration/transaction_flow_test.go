package integration

import (
	"fmt"
	"net/http"
	"testing"
)

func TestTransactionFlow_CreateListGetDelete(t *testing.T) {
	app := setupApp(t)
	adminToken := app.registerAdmin(t, "admin@test.com", "password123")
	ids := app.seedReference(t, adminToken)
	userToken, _, userID := app.registerUser(t, "user@test.com", "password123")

	// Create a transaction with a full hierarchy
	body := fmt.Sprintf(`{"status_id":%q,"transaction_type_id":%q,"category_id":%q,"subcategory_id":%q,"amount":"199.99","comment":"monthly server bill"}`,
		ids["Business"], ids["Expense"], ids["Infrastructure"], ids["VPS"])
	rec := app.request("POST", "/api/v1/transactions", body, userToken)
	if rec.Code != http.StatusCreated {
		t.Fatalf("create failed: %d %s", rec.Code, rec.Body.String())
	}
	created := parseJSON(t, rec)["transaction"].(map[string]interface{})
	txID := created["id"].(string)
	if created["user_id"] != userID {
		t.Errorf("expected owner %s, got %v", userID, created["user_id"])
	}
	if created["amount"] != "199.99" {
		t.Errorf("expected amount 199.99, got %v", created["amount"])
	}

	// A second one without a subcategory
	body = fmt.Sprintf(`{"status_id":%q,"transaction_type_id":%q,"category_id":%q,"amount":"3000.00"}`,
		ids["Personal"], ids["Income"], ids["Salary"])
	rec = app.request("POST", "/api/v1/transactions", body, userToken)
	if rec.Code != http.StatusCreated {
		t.Fatalf("create without subcategory failed: %d %s", rec.Code, rec.Body.String())
	}

	// List returns both, newest first, with pagination metadata
	rec = app.request("GET", "/api/v1/transactions", "", userToken)
	if rec.Code != http.StatusOK {
		t.Fatalf("list failed: %d %s", rec.Code, rec.Body.String())
	}
	result := parseJSON(t, rec)
	items := result["transactions"].([]interface{})
	if len(items) != 2 {
		t.Fatalf("expected 2 transactions, got %d", len(items))
	}
	if result["total_items"] != float64(2) || result["total_pages"] != float64(1) {
		t.Errorf("unexpected pagination metadata: %v", result)
	}

	// Get by ID returns the preloaded hierarchy
	rec = app.request("GET", "/api/v1/transactions/"+txID, "", userToken)
	if rec.Code != http.StatusOK {
		t.Fatalf("get failed: %d %s", rec.Code, rec.Body.String())
	}
	tx := parseJSON(t, rec)["transaction"].(map[string]interface{})
	if tx["category"].(map[string]interface{})["name"] != "Infrastructure" {
		t.Errorf("expected preloaded category Infrastructure, got %v", tx["category"])
	}
	if tx["subcategory"].(map[string]interface{})["name"] != "VPS" {
		t.Errorf("expected preloaded subcategory VPS, got %v", tx["subcategory"])
	}

	// Delete and verify it is gone
	rec = app.request("DELETE", "/api/v1/transactions/"+txID, "", userToken)
	if rec.Code != http.StatusOK {
		t.Fatalf("delete failed: %d %s", rec.Code, rec.Body.String())
	}
	rec = app.request("GET", "/api/v1/transactions/"+txID, "", userToken)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 after delete, got %d", rec.Code)
	}
}

func TestTransactionFlow_HierarchyRejectedEndToEnd(t *testing.T) {
	app := setupApp(t)
	adminToken := app.registerAdmin(t, "admin@test.com", "password123")
	ids := app.seedReference(t, adminToken)
	userToken, _, _ := app.registerUser(t, "user@test.com", "password123")

	// Salary belongs to Income, not Expense
	body := fmt.Sprintf(`{"status_id":%q,"transaction_type_id":%q,"category_id":%q,"amount":"50.00"}`,
		ids["Business"], ids["Expense"], ids["Salary"])
	rec := app.request("POST", "/api/v1/transactions", body, userToken)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d: %s", rec.Code, rec.Body.String())
	}
	if code := errorCode(t, rec); code != "HIERARCHY_MISMATCH" {
		t.Errorf("expected HIERARCHY_MISMATCH, got %v", code)
	}

	// Farpost belongs to Marketing, not Infrastructure
	body = fmt.Sprintf(`{"status_id":%q,"transaction_type_id":%q,"category_id":%q,"subcategory_id":%q,"amount":"50.00"}`,
		ids["Business"], ids["Expense"], ids["Infrastructure"], ids["Farpost"])
	rec = app.request("POST", "/api/v1/transactions", body, userToken)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d: %s", rec.Code, rec.Body.String())
	}
	if code := errorCode(t, rec); code != "HIERARCHY_MISMATCH" {
		t.Errorf("expected HIERARCHY_MISMATCH, got %v", code)
	}

	// More than two decimal places is rejected at the boundary
	body = fmt.Sprintf(`{"status_id":%q,"transaction_type_id":%q,"category_id":%q,"amount":"10.123"}`,
		ids["Business"], ids["Expense"], ids["Infrastructure"])
	rec = app.request("POST", "/api/v1/transactions", body, userToken)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestTransactionFlow_OwnershipIsolation(t *testing.T) {
	app := setupApp(t)
	adminToken := app.registerAdmin(t, "admin@test.com", "password123")
	ids := app.seedReference(t, adminToken)
	aliceToken, _, _ := app.registerUser(t, "alice@test.com", "password123")
	bobToken, _, _ := app.registerUser(t, "bob@test.com", "password123")

	body := fmt.Sprintf(`{"status_id":%q,"transaction_type_id":%q,"category_id":%q,"amount":"42.00"}`,
		ids["Tax"], ids["Expense"], ids["Infrastructure"])
	rec := app.request("POST", "/api/v1/transactions", body, aliceToken)
	if rec.Code != http.StatusCreated {
		t.Fatalf("create failed: %d %s", rec.Code, rec.Body.String())
	}
	txID := parseJSON(t, rec)["transaction"].(map[string]interface{})["id"].(string)

	// Bob cannot read, modify or delete Alice's transaction
	rec = app.request("GET", "/api/v1/transactions/"+txID, "", bobToken)
	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d: %s", rec.Code, rec.Body.String())
	}
	if code := errorCode(t, rec); code != "FORBIDDEN" {
		t.Errorf("expected FORBIDDEN, got %v", code)
	}

	rec = app.request("PATCH", "/api/v1/transactions/"+txID, `{"amount":"1.00"}`, bobToken)
	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403 on update, got %d: %s", rec.Code, rec.Body.String())
	}

	rec = app.request("DELETE", "/api/v1/transactions/"+txID, "", bobToken)
	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403 on delete, got %d: %s", rec.Code, rec.Body.String())
	}

	// Bob's list does not leak Alice's rows
	rec = app.request("GET", "/api/v1/transactions", "", bobToken)
	result := parseJSON(t, rec)
	if result["total_items"] != float64(0) {
		t.Errorf("expected empty list for Bob, got %v", result["total_items"])
	}
}

func TestTransactionFlow_FilteringAndOrdering(t *testing.T) {
	app := setupApp(t)
	adminToken := app.registerAdmin(t, "admin@test.com", "password123")
	ids := app.seedReference(t, adminToken)
	userToken, _, _ := app.registerUser(t, "user@test.com", "password123")

	amounts := []string{"10.00", "250.00", "75.50"}
	for _, amount := range amounts {
		body := fmt.Sprintf(`{"status_id":%q,"transaction_type_id":%q,"category_id":%q,"amount":%q}`,
			ids["Business"], ids["Expense"], ids["Infrastructure"], amount)
		rec := app.request("POST", "/api/v1/transactions", body, userToken)
		if rec.Code != http.StatusCreated {
			t.Fatalf("create %s failed: %d %s", amount, rec.Code, rec.Body.String())
		}
	}

	// Amount lower bound
	rec := app.request("GET", "/api/v1/transactions?amount__gte=50.00", "", userToken)
	if rec.Code != http.StatusOK {
		t.Fatalf("filtered list failed: %d %s", rec.Code, rec.Body.String())
	}
	result := parseJSON(t, rec)
	if result["total_items"] != float64(2) {
		t.Errorf("expected 2 matching transactions, got %v", result["total_items"])
	}

	// Ascending amount ordering
	rec = app.request("GET", "/api/v1/transactions?ordering=amount", "", userToken)
	items := parseJSON(t, rec)["transactions"].([]interface{})
	first := items[0].(map[string]interface{})
	if first["amount"] != "10" && first["amount"] != "10.00" {
		t.Errorf("expected smallest amount first, got %v", first["amount"])
	}

	// Status filter matches everything here
	rec = app.request("GET", "/api/v1/transactions?status="+ids["Business"], "", userToken)
	result = parseJSON(t, rec)
	if result["total_items"] != float64(3) {
		t.Errorf("expected 3 business transactions, got %v", result["total_items"])
	}

	// Unknown ordering column is rejected
	rec = app.request("GET", "/api/v1/transactions?ordering=comment", "", userToken)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for bad ordering, got %d: %s", rec.Code, rec.Body.String())
	}

	// Page size splits the result set
	rec = app.request("GET", "/api/v1/transactions?page=2&page_size=2", "", userToken)
	result = parseJSON(t, rec)
	if result["total_pages"] != float64(2) {
		t.Errorf("expected 2 pages, got %v", result["total_pages"])
	}
	if len(result["transactions"].([]interface{})) != 1 {
		t.Errorf("expected 1 row on page 2, got %d", len(result["transactions"].([]interface{})))
	}
}

func TestTransactionFlow_PartialUpdate(t *testing.T) {
	app := setupApp(t)
	adminToken := app.registerAdmin(t, "admin@test.com", "password123")
	ids := app.seedReference(t, adminToken)
	userToken, _, _ := app.registerUser(t, "user@test.com", "password123")

	body := fmt.Sprintf(`{"status_id":%q,"transaction_type_id":%q,"category_id":%q,"subcategory_id":%q,"amount":"120.00","comment":"original"}`,
		ids["Business"], ids["Expense"], ids["Infrastructure"], ids["VPS"])
	rec := app.request("POST", "/api/v1/transactions", body, userToken)
	if rec.Code != http.StatusCreated {
		t.Fatalf("create failed: %d %s", rec.Code, rec.Body.String())
	}
	txID := parseJSON(t, rec)["transaction"].(map[string]interface{})["id"].(string)

	// Amount-only update keeps everything else
	rec = app.request("PATCH", "/api/v1/transactions/"+txID, `{"amount":"130.00","comment":"revised"}`, userToken)
	if rec.Code != http.StatusOK {
		t.Fatalf("update failed: %d %s", rec.Code, rec.Body.String())
	}
	tx := parseJSON(t, rec)["transaction"].(map[string]interface{})
	if tx["comment"] != "revised" {
		t.Errorf("expected revised comment, got %v", tx["comment"])
	}
	if tx["status_id"] != ids["Business"] {
		t.Errorf("expected status to survive partial update, got %v", tx["status_id"])
	}

	// Moving the subcategory without its category is inconsistent
	patch := fmt.Sprintf(`{"subcategory_id":%q}`, ids["Avito"])
	rec = app.request("PATCH", "/api/v1/transactions/"+txID, patch, userToken)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d: %s", rec.Code, rec.Body.String())
	}
	if code := errorCode(t, rec); code != "HIERARCHY_MISMATCH" {
		t.Errorf("expected HIERARCHY_MISMATCH, got %v", code)
	}

	// Moving both together lands on the Marketing branch
	patch = fmt.Sprintf(`{"category_id":%q,"subcategory_id":%q}`, ids["Marketing"], ids["Avito"])
	rec = app.request("PATCH", "/api/v1/transactions/"+txID, patch, userToken)
	if rec.Code != http.StatusOK {
		t.Fatalf("branch move failed: %d %s", rec.Code, rec.Body.String())
	}

	// Clearing the subcategory persists
	rec = app.request("PATCH", "/api/v1/transactions/"+txID, `{"clear_subcategory":true}`, userToken)
	if rec.Code != http.StatusOK {
		t.Fatalf("clear failed: %d %s", rec.Code, rec.Body.String())
	}
	rec = app.request("GET", "/api/v1/transactions/"+txID, "", userToken)
	tx = parseJSON(t, rec)["transaction"].(map[string]interface{})
	if _, present := tx["subcategory_id"]; present {
		t.Errorf("expected subcategory cleared, got %v", tx["subcategory_id"])
	}
}
