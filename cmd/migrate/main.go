package main

import (
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/mysql"
	_ "github.com/golang-migrate/migrate/v4/source/file"

	"github.com/EdmilsonDev/CodeMentor/internal/pkg/env"
)

func main() {
	// Carrega as variáveis de ambiente do arquivo .env
	env.SetupEnvFile()

	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	command := os.Args[1]

	// Conexão com o banco de dados para as migrações
	dbURL := fmt.Sprintf("mysql://%s:%s@tcp(%s:%s)/%s?multiStatements=true",
		env.GetEnv("DB_USER", "codementor"),
		env.GetEnv("DB_PASSWORD", "codementor"),
		env.GetEnv("DB_HOST", "db"),
		env.GetEnv("DB_PORT", "3306"),
		env.GetEnv("DB_NAME", "codementor_db"),
	)

	log.Printf("Conectando ao banco de dados: %s@%s:%s/%s",
		env.GetEnv("DB_USER", "codementor"),
		env.GetEnv("DB_HOST", "db"),
		env.GetEnv("DB_PORT", "3306"),
		env.GetEnv("DB_NAME", "codementor_db"),
	)

	m, err := migrate.New(
		"file://migrations", // caminho para os arquivos de migração
		dbURL,
	)
	if err != nil {
		log.Fatalf("Erro ao inicializar a migração: %v", err)
	}

	defer func() {
		if sourceErr, dbErr := m.Close(); sourceErr != nil || dbErr != nil {
			log.Printf("Erro ao fechar os recursos da migração: %v, %v", sourceErr, dbErr)
		}
	}()

	switch command {
	case "up":
		// Executa todas as migrações pendentes
		if err := m.Up(); err != nil && err != migrate.ErrNoChange {
			log.Fatalf("Erro ao executar as migrações: %v", err)
		} else if err == migrate.ErrNoChange {
			log.Println("Nenhuma alteração: o banco de dados já está atualizado")
		} else {
			log.Println("Migrações executadas com sucesso")
		}

	case "down":
		// Reverte a última migração
		if err := m.Steps(-1); err != nil {
			log.Fatalf("Erro ao reverter a última migração: %v", err)
		} else {
			log.Println("Última migração revertida com sucesso")
		}

	case "goto":
		if len(os.Args) < 3 {
			log.Fatalf("Informe um número de versão")
		}
		version, err := strconv.ParseUint(os.Args[2], 10, 64)
		if err != nil {
			log.Fatalf("Número de versão inválido: %v", err)
		}

		// Migra para uma versão específica
		if err := m.Migrate(uint(version)); err != nil && err != migrate.ErrNoChange {
			log.Fatalf("Erro ao migrar para a versão %d: %v", version, err)
		} else if err == migrate.ErrNoChange {
			log.Printf("Nenhuma alteração: o banco de dados já está na versão %d", version)
		} else {
			log.Printf("Migração para a versão %d concluída", version)
		}

	case "status":
		// Mostra a versão atual da migração
		version, dirty, err := m.Version()
		if err != nil {
			if err == migrate.ErrNilVersion {
				log.Println("Nenhuma migração foi executada até agora")
			} else {
				log.Fatalf("Erro ao obter a versão da migração: %v", err)
			}
		} else {
			dirtyStatus := ""
			if dirty {
				dirtyStatus = " (dirty)"
			}
			log.Printf("Versão atual da migração: %d%s", version, dirtyStatus)
		}

	default:
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println("Uso: go run cmd/migrate/main.go [comando]")
	fmt.Println("Comandos disponíveis:")
	fmt.Println("  up     - Executa todas as migrações pendentes")
	fmt.Println("  down   - Reverte a última migração")
	fmt.Println("  goto N - Migra para a versão N")
	fmt.Println("  status - Mostra a versão atual da migração")
}
