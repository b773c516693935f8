package main

import (
	"fmt"
	"io/ioutil"
	"os"
	"strconv"
	"syscall"

	"github.com/gocql/gocql"
	"github.com/kzaag/colfam/cass"
	"github.com/kzaag/colfam/cmn"
	"github.com/kzaag/colfam/target"

	"golang.org/x/crypto/ssh/terminal"
	"gopkg.in/yaml.v2"
)

const usage = `usage: colfam [flags] <command> [args]

commands:
	insert <cf> <file|dir>               insert rows read from yaml
	insert <cf> <key> <file>             insert columns of one row
	delete <cf> <key> <column> [super]   delete one column, "" column with super deletes the super column
	get    <cf> <key> <column>           fetch one column
	super  <cf> <key> <super>            fetch sub-columns of a super column
	row    <cf> <key> [start finish count reversed]
	rows   <cf> <key>...
	range  <cf> <start> <end> [count reversed]
	all    <cf> [count reversed]
	schema                               create tables for configured column families
`

func main() {
	args, err := target.NewArgs(os.Args[0], os.Args[1:])
	if err != nil {
		os.Exit(2)
	}
	if err = run(args); err != nil {
		cmn.CndPrintError(args.Raw, err)
		os.Exit(1)
	}
}

func run(args *target.Args) error {
	var c *target.Config
	var t *target.Target
	var err error

	if len(args.Rest) == 0 {
		return fmt.Errorf("%s", usage)
	}

	if c, err = target.NewConfigFromPath(args.ConfigPath, args.Set); err != nil {
		return err
	}
	if t, err = args.Resolve(c); err != nil {
		return err
	}
	if err = readPassword(t); err != nil {
		return err
	}

	log := &cmn.Logger{Verbose: args.Verbose, Raw: args.Raw}

	if args.Rest[0] == "schema" {
		return schema(t, log, args.Execute)
	}

	client, err := cass.New(t, log)
	if err != nil {
		return err
	}
	defer client.Close()

	return runCommand(client, t, log, args.Rest[0], args.Rest[1:])
}

func schema(t *target.Target, log *cmn.Logger, execute bool) error {
	sess, err := cass.Dial(t, log)
	if err != nil {
		return err
	}
	defer sess.Close()

	stmts, err := cass.SchemaSync(sess.CQL(), t.Keyspace, t.ColumnFamilies)
	if err != nil {
		return err
	}
	_, err = cass.ExecLines(sess.CQL(), stmts, execute, log)
	return err
}

func readPassword(t *target.Target) error {
	if t.User == "" || t.Password != "" {
		return nil
	}
	fmt.Fprintf(cmn.Stderr, "password for %s@%s: ", t.User, t.Name)
	bytes, err := terminal.ReadPassword(int(syscall.Stdin))
	if err != nil {
		return err
	}
	fmt.Fprintln(cmn.Stderr)
	t.Password = string(bytes)
	return nil
}

func need(argv []string, min, max int, cmd string) error {
	if len(argv) < min || (max >= 0 && len(argv) > max) {
		return fmt.Errorf("%s: wrong number of arguments\n%s", cmd, usage)
	}
	return nil
}

func intArg(argv []string, ix int, def int) (int, error) {
	if len(argv) <= ix {
		return def, nil
	}
	v, err := strconv.Atoi(argv[ix])
	if err != nil {
		return 0, fmt.Errorf("couldnt parse %q as count: %v", argv[ix], err)
	}
	return v, nil
}

func boolArg(argv []string, ix int) (bool, error) {
	if len(argv) <= ix {
		return false, nil
	}
	return strconv.ParseBool(argv[ix])
}

func runCommand(
	client *cass.Client, t *target.Target, log *cmn.Logger, cmd string, argv []string,
) error {
	rcl, err := t.ReadConsistency()
	if err != nil {
		return err
	}
	wcl, err := t.WriteConsistency()
	if err != nil {
		return err
	}
	dcl, err := t.RemoveConsistency()
	if err != nil {
		return err
	}

	switch cmd {
	case "insert":
		if err = need(argv, 2, 3, cmd); err != nil {
			return err
		}
		return insert(client, log, argv, wcl)
	case "delete":
		if err = need(argv, 3, 4, cmd); err != nil {
			return err
		}
		super := ""
		if len(argv) == 4 {
			super = argv[3]
		}
		return client.Delete(argv[0], argv[1], argv[2], super, dcl)
	case "get":
		if err = need(argv, 3, 3, cmd); err != nil {
			return err
		}
		col, err := client.FetchCol(argv[0], argv[1], argv[2], rcl)
		if err != nil {
			return err
		}
		return output(col)
	case "super":
		if err = need(argv, 3, 3, cmd); err != nil {
			return err
		}
		cols, err := client.FetchSuperCol(argv[0], argv[1], argv[2], rcl)
		if err != nil {
			return err
		}
		return output(cols)
	case "row":
		if err = need(argv, 2, 6, cmd); err != nil {
			return err
		}
		start, finish := "", ""
		if len(argv) > 2 {
			start = argv[2]
		}
		if len(argv) > 3 {
			finish = argv[3]
		}
		count, err := intArg(argv, 4, cass.DefaultCount)
		if err != nil {
			return err
		}
		reversed, err := boolArg(argv, 5)
		if err != nil {
			return err
		}
		cols, err := client.FetchRow(argv[0], argv[1], start, finish, reversed, count, rcl)
		if err != nil {
			return err
		}
		return output(cols)
	case "rows":
		if err = need(argv, 2, -1, cmd); err != nil {
			return err
		}
		rows, err := client.FetchRows(argv[0], argv[1:], rcl)
		if err != nil {
			return err
		}
		return output(rows)
	case "range":
		if err = need(argv, 3, 5, cmd); err != nil {
			return err
		}
		count, err := intArg(argv, 3, cass.DefaultRowCount)
		if err != nil {
			return err
		}
		reversed, err := boolArg(argv, 4)
		if err != nil {
			return err
		}
		rows, err := client.FetchRowsByRange(argv[0], argv[1], argv[2], count, reversed, rcl)
		if err != nil {
			return err
		}
		return output(rows)
	case "all":
		if err = need(argv, 1, 3, cmd); err != nil {
			return err
		}
		count, err := intArg(argv, 1, cass.DefaultRowCount)
		if err != nil {
			return err
		}
		reversed, err := boolArg(argv, 2)
		if err != nil {
			return err
		}
		rows, err := client.FetchAll(argv[0], count, reversed, rcl)
		if err != nil {
			return err
		}
		return output(rows)
	default:
		return fmt.Errorf("Unknown command: %s\n%s", cmd, usage)
	}
}

/*
insert <cf> <path>        path holds rows with keys
insert <cf> <key> <file>  file holds columns of one row
*/
func insert(client *cass.Client, log *cmn.Logger, argv []string, cl gocql.Consistency) error {
	var rows []cass.KeyRow
	var err error

	if len(argv) == 2 {
		if rows, err = cass.ParserGetRowsInPath(argv[1]); err != nil {
			return err
		}
	} else {
		fc, err := ioutil.ReadFile(argv[2])
		if err != nil {
			return err
		}
		var cols cass.Row
		if err = yaml.Unmarshal(fc, &cols); err != nil {
			return fmt.Errorf("couldnt unmarshal %s %s", argv[2], err.Error())
		}
		row := cass.KeyRow{Key: argv[1], Columns: cols}
		if err = cass.ParserValidateRow(&row, argv[2]); err != nil {
			return err
		}
		rows = []cass.KeyRow{row}
	}

	for _, r := range rows {
		if err = client.Insert(argv[0], r.Key, r.Columns, cl); err != nil {
			return err
		}
		log.Success("    ", "%s[%s] %d columns", argv[0], r.Key, len(r.Columns))
	}
	return nil
}

func output(v interface{}) error {
	b, err := yaml.Marshal(v)
	if err != nil {
		return err
	}
	_, err = cmn.Stdout.Write(b)
	return err
}
