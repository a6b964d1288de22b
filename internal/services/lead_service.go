package services

import (
	"crypto/sha256"
	"encoding/csv"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"backoffice/internal/models"
	"backoffice/internal/repository"
)

var (
	ErrNotLead       = errors.New("order is not a lead")
	ErrInvalidStatus = errors.New("unknown status value")
)

// ImportResult summarises one CSV import run.
type ImportResult struct {
	Imported int      `json:"imported"`
	Skipped  int      `json:"skipped"`
	Errors   []string `json:"errors,omitempty"`
}

// LeadService handles bulk-imported prospective orders. Leads live in
// order_header with interface "leads", a zero customer id and no line
// items until conversion.
type LeadService interface {
	ImportCSV(r io.Reader, actor uint) (*ImportResult, error)
	ListLeads(filter ListFilter) (*ListResult, error)
	UpdateLeadStatus(id uint, newStatus, note string, actor uint) (*models.Order, error)
	ConvertToOrder(id uint, actor uint) (*models.Order, error)
	DeleteLead(id uint, actor uint) error
}

type leadService struct {
	orderRepo   repository.OrderRepository
	productRepo repository.ProductRepository
}

func NewLeadService(orderRepo repository.OrderRepository, productRepo repository.ProductRepository) LeadService {
	return &leadService{orderRepo: orderRepo, productRepo: productRepo}
}

// ImportCSV reads rows of [full name, city, phone, product code, note].
// Rows with the same name+phone within one file are deduplicated by
// content hash. Rows referencing unknown product codes are skipped and
// reported, the rest of the file still imports.
func (s *leadService) ImportCSV(r io.Reader, actor uint) (*ImportResult, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	result := &ImportResult{}
	seen := make(map[string]bool)
	line := 0

	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		line++
		if err != nil {
			result.Skipped++
			result.Errors = append(result.Errors, fmt.Sprintf("line %d: %v", line, err))
			continue
		}
		if len(record) < 4 {
			result.Skipped++
			result.Errors = append(result.Errors, fmt.Sprintf("line %d: expected at least 4 columns, got %d", line, len(record)))
			continue
		}

		name := strings.TrimSpace(record[0])
		city := strings.TrimSpace(record[1])
		phone := strings.TrimSpace(record[2])
		productCode := strings.TrimSpace(record[3])
		note := ""
		if len(record) > 4 {
			note = strings.TrimSpace(record[4])
		}
		if name == "" || phone == "" {
			result.Skipped++
			result.Errors = append(result.Errors, fmt.Sprintf("line %d: name and phone are required", line))
			continue
		}

		hash := leadHash(name, phone)
		if seen[hash] {
			result.Skipped++
			continue
		}
		seen[hash] = true

		product, err := s.productRepo.GetByCode(productCode)
		if err != nil {
			result.Skipped++
			result.Errors = append(result.Errors, fmt.Sprintf("line %d: unknown product code %q", line, productCode))
			continue
		}

		lead := &models.Order{
			CustomerID: 0,
			IssueDate:  time.Now(),
			Currency:   models.CurrencyLKR,
			Status:     string(models.OrderPending),
			PayStatus:  string(models.PayUnpaid),
			Interface:  string(models.InterfaceLeads),
			LeadName:   name,
			LeadCity:   city,
			LeadPhone:  phone,
			CreatedBy:  actor,
		}
		appendNote(lead, fmt.Sprintf("imported lead, product %s", product.Code))
		if note != "" {
			appendNote(lead, note)
		}

		if err := s.orderRepo.Create(lead); err != nil {
			result.Skipped++
			result.Errors = append(result.Errors, fmt.Sprintf("line %d: %v", line, err))
			continue
		}
		result.Imported++
	}

	if result.Imported > 0 {
		entry := &models.UserLog{
			UserID:  actor,
			Action:  models.ActionLeadImport,
			Details: fmt.Sprintf("imported %d leads, skipped %d", result.Imported, result.Skipped),
		}
		if err := s.orderRepo.CreateLog(entry); err != nil {
			return nil, err
		}
	}
	return result, nil
}

func (s *leadService) ListLeads(filter ListFilter) (*ListResult, error) {
	page, limit := normalizePage(filter.Page, filter.Limit)
	orders, total, err := s.orderRepo.Search(repository.OrderFilter{
		Status:    filter.Status,
		Interface: string(models.InterfaceLeads),
		Search:    filter.Search,
		Page:      page,
		Limit:     limit,
	})
	if err != nil {
		return nil, err
	}
	return &ListResult{
		Orders:     orders,
		TotalRows:  total,
		TotalPages: totalPages(total, limit),
		Page:       page,
		Limit:      limit,
	}, nil
}

// UpdateLeadStatus moves a lead between states and appends the note.
// Leads have no items, so nothing is propagated.
func (s *leadService) UpdateLeadStatus(id uint, newStatus, note string, actor uint) (*models.Order, error) {
	if !models.ValidStatus(newStatus) {
		return nil, ErrInvalidStatus
	}
	lead, err := s.orderRepo.GetByID(id)
	if err != nil {
		return nil, ErrOrderNotFound
	}
	if lead.Interface != string(models.InterfaceLeads) {
		return nil, ErrNotLead
	}

	lead.Status = newStatus
	if note != "" {
		appendNote(lead, note)
	}

	err = s.orderRepo.Transaction(func(tx repository.OrderRepository) error {
		if err := tx.UpdateHeaderVersioned(lead); err != nil {
			return err
		}
		return tx.CreateLog(&models.UserLog{
			UserID:  actor,
			Action:  models.ActionLeadStatus,
			OrderID: lead.ID,
			Details: "lead status set to " + newStatus,
		})
	})
	if err != nil {
		return nil, err
	}
	return lead, nil
}

// ConvertToOrder promotes a pending lead to a regular order. Only the
// interface tag and notes change.
func (s *leadService) ConvertToOrder(id uint, actor uint) (*models.Order, error) {
	lead, err := s.orderRepo.GetByID(id)
	if err != nil {
		return nil, ErrOrderNotFound
	}
	if lead.Interface != string(models.InterfaceLeads) {
		return nil, ErrNotLead
	}
	if lead.Status != string(models.OrderPending) {
		return nil, ErrInvalidTransition
	}

	lead.Interface = string(models.InterfaceIndividual)
	appendNote(lead, "converted from lead to order")

	err = s.orderRepo.Transaction(func(tx repository.OrderRepository) error {
		if err := tx.UpdateHeaderVersioned(lead); err != nil {
			return err
		}
		return tx.CreateLog(&models.UserLog{
			UserID:  actor,
			Action:  models.ActionLeadConvert,
			OrderID: lead.ID,
			Details: "lead converted to order",
		})
	})
	if err != nil {
		return nil, err
	}
	return lead, nil
}

// DeleteLead hard-deletes a lead. Converted orders are never deleted.
func (s *leadService) DeleteLead(id uint, actor uint) error {
	lead, err := s.orderRepo.GetByID(id)
	if err != nil {
		return ErrOrderNotFound
	}
	if lead.Interface != string(models.InterfaceLeads) {
		return ErrNotLead
	}
	return s.orderRepo.HardDelete(id)
}

func leadHash(name, phone string) string {
	sum := sha256.Sum256([]byte(strings.ToLower(name) + "|" + phone))
	return hex.EncodeToString(sum[:])
}
