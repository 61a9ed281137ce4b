package storage

import (
	"catalog-scraper/models"
	"errors"
)

// Writer is anything that persists a run's products.
type Writer interface {
	Write(products []models.Product, destination string) error
}

// MultiWriter writes to every writer in order. One failing writer does not
// stop the others; all errors are returned joined.
type MultiWriter []Writer

func (m MultiWriter) Write(products []models.Product, destination string) error {
	var errs []error
	for _, w := range m {
		if err := w.Write(products, destination); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
