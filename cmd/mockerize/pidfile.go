package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"syscall"
	"time"
)

// DefaultPIDPath é o arquivo usado quando --pid-file não é informado.
const DefaultPIDPath = "mockerize.pid"

// PIDFile descreve a instância em execução.
type PIDFile struct {
	PID       int       `json:"pid"`
	StartTime time.Time `json:"startTime"`
	Source    string    `json:"source"`
	Addr      string    `json:"addr,omitempty"`
}

// WritePIDFile grava o arquivo de forma atômica. Falha se outra instância
// viva já estiver registrada no mesmo caminho.
func WritePIDFile(path string, info *PIDFile) error {
	if existing, err := ReadPIDFile(path); err == nil && existing.PID != info.PID && existing.IsRunning() {
		return fmt.Errorf("instância já em execução (pid %d) registrada em %s", existing.PID, path)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("falha ao criar diretório do PID file: %w", err)
	}

	data, err := json.MarshalIndent(info, "", "  ")
	if err != nil {
		return fmt.Errorf("falha ao serializar PID file: %w", err)
	}

	tmpPath := path + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0o644); err != nil {
		return fmt.Errorf("falha ao gravar PID file: %w", err)
	}

	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("falha ao renomear PID file: %w", err)
	}
	return nil
}

// ReadPIDFile lê o arquivo gravado por WritePIDFile.
func ReadPIDFile(path string) (*PIDFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var info PIDFile
	if err := json.Unmarshal(data, &info); err != nil {
		return nil, fmt.Errorf("PID file inválido: %w", err)
	}
	return &info, nil
}

// RemovePIDFile remove o arquivo; ausência não é erro.
func RemovePIDFile(path string) error {
	if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("falha ao remover PID file: %w", err)
	}
	return nil
}

// IsRunning verifica se o processo registrado ainda existe.
func (p *PIDFile) IsRunning() bool {
	if p.PID <= 0 {
		return false
	}

	process, err := os.FindProcess(p.PID)
	if err != nil {
		return false
	}
	return process.Signal(syscall.Signal(0)) == nil
}
