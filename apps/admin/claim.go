package main

import "fmt"

// claim stamps every unowned record with the given tenant ID.
func (cli *commandLine) claim(tenantID string) error {
	n, err := cli.svc.ClaimUnowned(tenantID)
	if err != nil {
		return err
	}
	fmt.Printf("%d record(s) claimed\n", n)
	return nil
}
