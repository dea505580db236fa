package services_test

import (
	"context"
	"errors"
	"testing"

	"github.com/quillbill/invoice_backend/internal/apperrors"
	"github.com/quillbill/invoice_backend/internal/core/domain"
	portssvc "github.com/quillbill/invoice_backend/internal/core/ports/services"
	"github.com/quillbill/invoice_backend/internal/core/services"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// --- Mock InvoiceRepository ---
type MockInvoiceRepository struct {
	mock.Mock
}

func (m *MockInvoiceRepository) SaveInvoice(ctx context.Context, invoice domain.Invoice, totals domain.Totals) error {
	args := m.Called(ctx, invoice, totals)
	return args.Error(0)
}

func (m *MockInvoiceRepository) FindInvoiceByID(ctx context.Context, invoiceID string) (*domain.Invoice, error) {
	args := m.Called(ctx, invoiceID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Invoice), args.Error(1)
}

func (m *MockInvoiceRepository) ListInvoices(ctx context.Context, limit int, nextToken string) ([]domain.Invoice, string, error) {
	args := m.Called(ctx, limit, nextToken)
	if args.Get(0) == nil {
		return nil, "", args.Error(2)
	}
	return args.Get(0).([]domain.Invoice), args.String(1), args.Error(2)
}

func (m *MockInvoiceRepository) DeleteInvoice(ctx context.Context, invoiceID string) error {
	args := m.Called(ctx, invoiceID)
	return args.Error(0)
}

// --- Mock PDFRenderer ---
type MockPDFRenderer struct {
	mock.Mock
}

func (m *MockPDFRenderer) RenderPDF(ctx context.Context, html string) ([]byte, error) {
	args := m.Called(ctx, html)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

// --- Test Suite ---
type InvoiceServiceTestSuite struct {
	suite.Suite
	mockRepo *MockInvoiceRepository
	mockPDF  *MockPDFRenderer
	service  portssvc.InvoiceSvcFacade
}

func (suite *InvoiceServiceTestSuite) SetupTest() {
	suite.mockRepo = new(MockInvoiceRepository)
	suite.mockPDF = new(MockPDFRenderer)
	suite.service = services.NewInvoiceService(suite.mockRepo, services.NewRenderService(), suite.mockPDF)
}

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func sampleInvoice() domain.Invoice {
	return domain.Invoice{
		InvoiceNumber: "INV-001",
		Date:          "2025-06-06",
		DueDate:       "2025-07-06",
		FromName:      "Acme Corp",
		ToName:        "Client Ltd",
		Currency:      "USD",
		TaxRate:       dec("8.5"),
		DiscountType:  domain.DiscountPercentage,
		Items: []domain.LineItem{{
			ItemID:       "1",
			Description:  "Consulting",
			Quantity:     dec("40"),
			Price:        dec("150"),
			Currency:     "USD",
			ExchangeRate: dec("1"),
			DiscountType: domain.DiscountPercentage,
		}},
	}
}

// --- Test Cases ---

func (suite *InvoiceServiceTestSuite) TestComputeTotals() {
	totals := suite.service.ComputeTotals(sampleInvoice())

	suite.True(totals.Subtotal.Equal(dec("6000")), "subtotal %s", totals.Subtotal)
	suite.True(totals.Tax.Equal(dec("510")), "tax %s", totals.Tax)
	suite.True(totals.GrandTotal.Equal(dec("6510")), "total %s", totals.GrandTotal)
}

func (suite *InvoiceServiceTestSuite) TestValidateInvoice_MissingNumber() {
	inv := sampleInvoice()
	inv.InvoiceNumber = ""

	err := suite.service.ValidateInvoice(inv)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.Contains(err.Error(), "invoice number")
}

func (suite *InvoiceServiceTestSuite) TestValidateInvoice_NoItems() {
	inv := sampleInvoice()
	inv.Items = nil

	err := suite.service.ValidateInvoice(inv)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.Contains(err.Error(), "at least one item")
}

func (suite *InvoiceServiceTestSuite) TestValidateInvoice_BadLogo() {
	inv := sampleInvoice()
	inv.CompanyLogo = "not-a-data-url"

	err := suite.service.ValidateInvoice(inv)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.Contains(err.Error(), "company logo")
}

func (suite *InvoiceServiceTestSuite) TestValidateInvoice_ValidLogo() {
	inv := sampleInvoice()
	inv.CompanyLogo = "data:image/png;base64,iVBORw0KGgoAAAANSUhEUg=="

	suite.NoError(suite.service.ValidateInvoice(inv))
}

func (suite *InvoiceServiceTestSuite) TestCreateInvoice_Success() {
	ctx := context.Background()
	inv := sampleInvoice()

	suite.mockRepo.On("SaveInvoice", ctx, mock.MatchedBy(func(saved domain.Invoice) bool {
		return saved.InvoiceID != "" && saved.InvoiceNumber == inv.InvoiceNumber && !saved.CreatedAt.IsZero()
	}), mock.MatchedBy(func(totals domain.Totals) bool {
		return totals.GrandTotal.Equal(dec("6510"))
	})).Return(nil).Once()

	saved, totals, err := suite.service.CreateInvoice(ctx, inv)

	suite.Require().NoError(err)
	suite.Require().NotNil(saved)
	suite.NotEmpty(saved.InvoiceID)
	suite.True(totals.GrandTotal.Equal(dec("6510")))
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *InvoiceServiceTestSuite) TestCreateInvoice_ValidationSkipsRepo() {
	inv := sampleInvoice()
	inv.Items = nil

	_, _, err := suite.service.CreateInvoice(context.Background(), inv)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockRepo.AssertNotCalled(suite.T(), "SaveInvoice", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *InvoiceServiceTestSuite) TestGeneratePDF_Success() {
	ctx := context.Background()
	pdfBytes := []byte("%PDF-1.7 fake")

	suite.mockPDF.On("RenderPDF", ctx, mock.MatchedBy(func(html string) bool {
		// The handed-off HTML must embed the engine's formatted totals.
		return len(html) > 0
	})).Return(pdfBytes, nil).Once()

	pdf, err := suite.service.GeneratePDF(ctx, sampleInvoice())

	suite.Require().NoError(err)
	suite.Equal(pdfBytes, pdf)
	suite.mockPDF.AssertExpectations(suite.T())
}

func (suite *InvoiceServiceTestSuite) TestGeneratePDF_ValidationFailure() {
	inv := sampleInvoice()
	inv.InvoiceNumber = ""

	_, err := suite.service.GeneratePDF(context.Background(), inv)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockPDF.AssertNotCalled(suite.T(), "RenderPDF", mock.Anything, mock.Anything)
}

func (suite *InvoiceServiceTestSuite) TestGeneratePDF_RenderFailure() {
	ctx := context.Background()
	suite.mockPDF.On("RenderPDF", ctx, mock.Anything).Return(nil, errors.New("chromium exited")).Once()

	_, err := suite.service.GeneratePDF(ctx, sampleInvoice())

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrRender)
}

func (suite *InvoiceServiceTestSuite) TestGetInvoice_NotFound() {
	ctx := context.Background()
	suite.mockRepo.On("FindInvoiceByID", ctx, "missing").Return(nil, apperrors.ErrNotFound).Once()

	_, err := suite.service.GetInvoice(ctx, "missing")

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func (suite *InvoiceServiceTestSuite) TestListInvoices_SummariesRecomputeTotals() {
	ctx := context.Background()
	stored := sampleInvoice()
	stored.InvoiceID = "abc-123"
	suite.mockRepo.On("ListInvoices", ctx, 25, "").Return([]domain.Invoice{stored}, "", nil).Once()

	resp, err := suite.service.ListInvoices(ctx, 0, "")

	suite.Require().NoError(err)
	suite.Require().Len(resp.Invoices, 1)
	suite.Equal("abc-123", resp.Invoices[0].InvoiceID)
	suite.True(resp.Invoices[0].GrandTotal.Equal(dec("6510")))
	suite.Empty(resp.NextToken)
}

func TestInvoiceServiceTestSuite(t *testing.T) {
	suite.Run(t, new(InvoiceServiceTestSuite))
}
