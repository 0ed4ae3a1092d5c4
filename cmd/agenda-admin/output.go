package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/profSauloRenato/agenda-setor-vespasiano/internal/domain/model"
)

func writef(w io.Writer, format string, args ...any) error {
	_, err := fmt.Fprintf(w, format, args...)
	return err
}

func writeln(w io.Writer, args ...any) error {
	if len(args) == 0 {
		_, err := fmt.Fprintln(w)
		return err
	}
	_, err := fmt.Fprintln(w, args...)
	return err
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func printUser(w io.Writer, u *model.User) error {
	if u == nil {
		return writeln(w, "not logged in")
	}
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	rows := [][2]string{
		{"ID", u.ID},
		{"Name", u.Name},
		{"Email", u.Email},
		{"Location", firstNonEmpty(u.LocationName, u.PrimaryLocationID)},
		{"Roles", rolesOrDash(u.Roles)},
		{"Admin", yesNo(u.IsAdmin)},
	}
	for _, r := range rows {
		if err := writef(tw, "%s:\t%s\n", r[0], r[1]); err != nil {
			return err
		}
	}
	return tw.Flush()
}

func printCargos(w io.Writer, cargos []*model.Cargo) error {
	if len(cargos) == 0 {
		return writeln(w, "(no roles)")
	}
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	if err := writeln(tw, "ID\tNAME\tADMIN PUSH"); err != nil {
		return err
	}
	for _, c := range cargos {
		if err := writef(tw, "%s\t%s\t%s\n", c.ID, c.Name, yesNo(c.CanSendAdministrativePush)); err != nil {
			return err
		}
	}
	return tw.Flush()
}

func printCargo(w io.Writer, c *model.Cargo) error {
	return printCargos(w, []*model.Cargo{c})
}

func rolesOrDash(roles []string) string {
	if len(roles) == 0 {
		return "-"
	}
	return strings.Join(roles, ", ")
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}
