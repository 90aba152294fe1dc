package main

import (
	"database/sql"
	"fmt"
	"io/fs"
	"strconv"
	"testing"

	"github.com/volatiletech/null/v8"

	"github.com/charmakemoussa99-ops/gestion-de-l-cole/core/account"
	"github.com/charmakemoussa99-ops/gestion-de-l-cole/core/school"
	"github.com/charmakemoussa99-ops/gestion-de-l-cole/core/student"
	inmemstore "github.com/charmakemoussa99-ops/gestion-de-l-cole/storage/docstore/inmem"
)

func setup(t *testing.T) (*commandLine, school.Store) {
	t.Helper()
	store := inmemstore.Open()
	return &commandLine{svc: school.NewService(store)}, store
}

type cliTest struct {
	name       string
	args       []string // without program name
	wantErr    error
	wantErrStr string
	extra      interface{}
}

func Test_commandLine_migrate(t *testing.T) {
	cli, _ := setup(t)

	if err := cli.migrate([]string{"up"}); err != errNoDB {
		t.Errorf("migrate() without postgres error = %v, want %v", err, errNoDB)
	}

	cli.db = new(sql.DB)
	gooseRunFunc = func(command string, db *sql.DB, fsys fs.FS, dir string, args ...string) error {
		switch command {
		case "up", "up-by-one", "down", "fix", "redo", "reset", "status", "version": // pass
		case "up-to", "down-to":
			if len(args) == 0 {
				return fmt.Errorf("%s must be of form: goose [OPTIONS] DRIVER DBSTRING %s VERSION", command, command)
			}
			if _, err := strconv.ParseInt(args[0], 10, 64); err != nil {
				return fmt.Errorf("version must be a number (got '%s')", args[0])
			}
		case "create":
			if len(args) == 0 {
				return fmt.Errorf("create must be of form: goose [OPTIONS] DRIVER DBSTRING create NAME [go|sql]")
			}
		default:
			return fmt.Errorf("%q: no such command", command)
		}
		return nil
	}

	tests := []cliTest{
		{name: "no subcommand", args: []string{"migrate"}, wantErr: errHelp},
		{name: "unknown subcommand", args: []string{"migrate", "lol"}, wantErrStr: "\"lol\": no such command"},
		{name: "up-to: no args", args: []string{"migrate", "up-to"}, wantErrStr: "up-to must be of form: goose [OPTIONS] DRIVER DBSTRING up-to VERSION"},
		{name: "up-to: non-int arg", args: []string{"migrate", "up-to", "lol"}, wantErrStr: "version must be a number (got 'lol')"},
		{name: "create: no args", args: []string{"migrate", "create"}, wantErrStr: "create must be of form: goose [OPTIONS] DRIVER DBSTRING create NAME [go|sql]"},
		{name: "up", args: []string{"migrate", "up"}},
		{name: "up-to", args: []string{"migrate", "up-to", "2"}},
		{name: "down", args: []string{"migrate", "down"}},
		{name: "down-to", args: []string{"migrate", "down-to", "1"}},
		{name: "status", args: []string{"migrate", "status"}},
		{name: "create", args: []string{"migrate", "create", "course", "sql"}},
	}
	for _, tt := range tests {
		args := append([]string{"admin"}, tt.args...)

		t.Run(tt.name, func(t *testing.T) {
			if err := cli.run(args); err != nil {
				if tt.wantErr != nil {
					if err != tt.wantErr {
						t.Errorf("cli.run() error = %v, wantErr %v", err, tt.wantErr)
					}
				} else if tt.wantErrStr != "" {
					if err.Error() != tt.wantErrStr {
						t.Errorf("cli.run() error.Error() = %s, wantErrStr %s", err.Error(), tt.wantErrStr)
					}
				} else {
					t.Errorf("cli.run() unexpected error = %v", err)
				}
			}
		})
	}
}

func Test_commandLine_addPrincipal(t *testing.T) {
	cli, _ := setup(t)

	type extra struct {
		pwd string
	}
	tests := []cliTest{
		{name: "no command", wantErr: errHelp},
		{name: "unknown command", args: []string{"lol"}, wantErr: errHelp},
		{name: "no args", args: []string{"addprincipal"}, wantErr: errHelp},
		{name: "name but no password", args: []string{"addprincipal", "-name", "Awe Lol", "-username", "awe", "-email", "awe@test.cd"}, wantErr: errHelp},
		{
			name:  "principal created",
			args:  []string{"addprincipal", "-name", "Awe Lol", "-username", "awe", "-email", "awe@test.cd"},
			extra: extra{pwd: "Xaxa!Lol1Mdr"},
		},
	}
	for _, tt := range tests {
		args := append([]string{"admin"}, tt.args...)

		readPasswordFunc = func(fd int) ([]byte, error) {
			if extra, ok := tt.extra.(extra); ok {
				return []byte(extra.pwd), nil
			}
			return nil, nil
		}

		t.Run(tt.name, func(t *testing.T) {
			err := cli.run(args)
			if err == nil {
				accs, err := cli.svc.Principals()
				if err != nil {
					t.Fatalf("Principals() failed, %v", err)
				}
				if len(accs) != 1 {
					t.Fatalf("Principals() len = %d, want 1", len(accs))
				}
				if acc := accs[0]; acc.Owner.String != acc.ID {
					t.Errorf("principal Owner = %s, want self (%s)", acc.Owner.String, acc.ID)
				}
			} else if err != tt.wantErr {
				t.Errorf("cli.run() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func Test_commandLine_addSuperAdmin(t *testing.T) {
	cli, _ := setup(t)

	readPasswordFunc = func(fd int) ([]byte, error) { return []byte("Xaxa!Lol1Mdr"), nil }

	if err := cli.run([]string{"admin", "addsuperadmin"}); err != errHelp {
		t.Errorf("cli.run() error = %v, wantErr %v", err, errHelp)
	}
	args := []string{"admin", "addsuperadmin", "-name", "Root Lol", "-username", "root", "-email", "root@test.cd"}
	if err := cli.run(args); err != nil {
		t.Fatalf("cli.run() unexpected error = %v", err)
	}

	accs, err := cli.svc.Accounts(null.String{})
	if err != nil {
		t.Fatalf("Accounts() failed, %v", err)
	}
	if len(accs) != 1 {
		t.Fatalf("Accounts() len = %d, want 1", len(accs))
	}
	acc := accs[0]
	if acc.Role != account.RoleSuperAdmin {
		t.Errorf("Role = %s, want %s", acc.Role, account.RoleSuperAdmin)
	}
	if acc.Owner.Valid {
		t.Errorf("Owner = %v, want unowned", acc.Owner)
	}
	if acc.TenantID().Valid {
		t.Errorf("TenantID() = %v, want null", acc.TenantID())
	}
}

func Test_commandLine_claim(t *testing.T) {
	cli, store := setup(t)

	doc, err := store.Load()
	if err != nil {
		t.Fatalf("Load() failed, %v", err)
	}
	doc.Students = append(doc.Students,
		student.Student{ID: "std1", Name: "Awe Lol", Matricule: "M-001", Level: "6e", Division: "A"},
	)
	if err := store.Replace(doc); err != nil {
		t.Fatalf("Replace() failed, %v", err)
	}

	if err := cli.run([]string{"admin", "claim"}); err != errHelp {
		t.Errorf("cli.run() error = %v, wantErr %v", err, errHelp)
	}
	if err := cli.run([]string{"admin", "claim", "-tenant", "ten1"}); err != nil {
		t.Fatalf("cli.run() unexpected error = %v", err)
	}

	students, err := cli.svc.Students(null.StringFrom("ten1"))
	if err != nil {
		t.Fatalf("Students() failed, %v", err)
	}
	if len(students) != 1 {
		t.Errorf("Students() len = %d, want 1", len(students))
	}

	// claiming again is a no-op
	n, err := cli.svc.ClaimUnowned("ten2")
	if err != nil {
		t.Fatalf("ClaimUnowned() failed, %v", err)
	}
	if n != 0 {
		t.Errorf("ClaimUnowned() n = %d, want 0", n)
	}
}
