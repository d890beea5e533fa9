package main

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// confirm insiste até receber yes/y ou no/n. Fim da entrada conta como não.
func confirm(in io.Reader, out io.Writer) bool {
	scanner := bufio.NewScanner(in)
	for scanner.Scan() {
		switch strings.ToLower(strings.TrimSpace(scanner.Text())) {
		case "y", "yes":
			return true
		case "n", "no":
			return false
		default:
			fmt.Fprintln(out, "Por favor, responda 'yes' ou 'no'.")
		}
	}
	return false
}
