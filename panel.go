package main

import (
	"bufio"
	"catalog-scraper/models"
	"catalog-scraper/scraper/jumia"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
)

var errInvalidChoice = errors.New("invalid choice, please restart and choose 1, 2, or 3")

// panelChoice is what the interactive menu collected.
type panelChoice struct {
	option    string
	query     string
	express   bool
	localOnly bool
}

func readPanel(in io.Reader, out io.Writer) (panelChoice, error) {
	sc := bufio.NewScanner(in)
	ask := func(prompt string) string {
		fmt.Fprint(out, prompt)
		if !sc.Scan() {
			return ""
		}
		return strings.TrimSpace(sc.Text())
	}

	fmt.Fprintln(out, "Welcome to the Product Scraper!")
	fmt.Fprintln(out, "1. Scrape Black Friday Products")
	fmt.Fprintln(out, "2. Search for a Specific Product")
	fmt.Fprintln(out, "3. Scrape Flash Sales")

	var c panelChoice
	c.express = strings.EqualFold(ask("Do you want express shipping? (yes/no): "), "yes")
	c.localOnly = strings.EqualFold(ask("Do you want to ship from local? (yes/no): "), "yes")
	c.option = ask("Enter your choice (1, 2, or 3): ")

	switch c.option {
	case "1", "3":
	case "2":
		c.query = ask("Enter the product name to search for: ")
		if c.query == "" {
			return c, errors.New("search query is empty")
		}
	default:
		return c, errInvalidChoice
	}
	if err := sc.Err(); err != nil {
		return c, fmt.Errorf("read input: %w", err)
	}
	return c, nil
}

func runPanel(ctx context.Context, in io.Reader, out io.Writer) error {
	c, err := readPanel(in, out)
	if err != nil {
		return err
	}

	return execute(ctx, func(s *jumia.Scraper) (*models.ResultSet, error) {
		switch c.option {
		case "1":
			return s.RunSequential(ctx, jumia.BlackFridayPath, c.express, c.localOnly)
		case "2":
			return s.RunSearch(ctx, c.query, c.express, c.localOnly)
		default:
			return s.RunSinglePage(ctx, jumia.FlashSalesPath, c.express, c.localOnly)
		}
	})
}
