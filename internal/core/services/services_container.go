package services

import (
	portsrepo "github.com/quillbill/invoice_backend/internal/core/ports/repositories"
	portssvc "github.com/quillbill/invoice_backend/internal/core/ports/services"
)

// NewServiceContainer creates a new service container with properly initialized dependencies.
func NewServiceContainer(repo portsrepo.InvoiceRepositoryFacade, pdfRenderer portssvc.PDFRenderer) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}
	container.Invoice = NewInvoiceService(repo, NewRenderService(), pdfRenderer)
	return container
}
