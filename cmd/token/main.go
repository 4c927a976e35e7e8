// token emite un Bearer token para las rutas de escritura de la API.
//
// Uso: go run ./cmd/token -sub billing-bot [-scope write] [-exp 60]
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/jhoicas/biztime-api/pkg/config"
	"github.com/jhoicas/biztime-api/pkg/jwt"
)

func main() {
	sub := flag.String("sub", "", "subject del token (cliente de la API)")
	scope := flag.String("scope", jwt.ScopeWrite, "scope del token")
	exp := flag.Int("exp", 0, "minutos de validez (0: JWT_EXPIRATION_MINUTES)")
	flag.Parse()

	if *sub == "" {
		fmt.Fprintln(os.Stderr, "-sub es requerido")
		os.Exit(2)
	}
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "cargar configuración: %v\n", err)
		os.Exit(1)
	}
	if !cfg.JWT.Enabled() {
		fmt.Fprintln(os.Stderr, "JWT_SECRET no está configurado")
		os.Exit(1)
	}
	minutes := cfg.JWT.Expiration
	if *exp > 0 {
		minutes = *exp
	}
	tok, err := jwt.Generate(cfg.JWT.Secret, *sub, *scope, cfg.JWT.Issuer, minutes)
	if err != nil {
		fmt.Fprintf(os.Stderr, "generar token: %v\n", err)
		os.Exit(1)
	}
	fmt.Println(tok)
}
