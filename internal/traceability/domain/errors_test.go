package domain

import (
	"fmt"
	"testing"
)

func TestErrorClassification(t *testing.T) {
	validation := Validationf("amount %d is off", 2)
	notFound := NotFound("batch", "lot-1")
	conflict := Conflict("actor", "farm-1")

	if !IsValidation(validation) || IsNotFound(validation) || IsConflict(validation) {
		t.Fatal("validation error misclassified")
	}
	if !IsNotFound(notFound) || IsValidation(notFound) {
		t.Fatal("not found error misclassified")
	}
	if !IsConflict(conflict) || IsNotFound(conflict) {
		t.Fatal("conflict error misclassified")
	}

	if validation.Error() != "amount 2 is off" {
		t.Fatalf("unexpected message %q", validation.Error())
	}
	if notFound.Error() != "batch lot-1 not found" {
		t.Fatalf("unexpected message %q", notFound.Error())
	}
	if conflict.Error() != "actor farm-1 already exists" {
		t.Fatalf("unexpected message %q", conflict.Error())
	}
}

func TestErrorClassificationThroughWrapping(t *testing.T) {
	wrapped := fmt.Errorf("loading batch: %w", NotFound("batch", "lot-1"))
	if !IsNotFound(wrapped) {
		t.Fatal("wrapped not found error lost its class")
	}
	if IsValidation(wrapped) {
		t.Fatal("wrapped not found error misread as validation")
	}
}
