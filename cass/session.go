package cass

import (
	"time"

	"github.com/gocql/gocql"
	"github.com/kzaag/colfam/cmn"
	"github.com/kzaag/colfam/target"
)

// Session implements Stub over a gocql session.
type Session struct {
	sess *gocql.Session
}

func newCluster(t *target.Target) (*gocql.ClusterConfig, error) {
	timeout, err := t.Timeout()
	if err != nil {
		return nil, err
	}
	cons, err := t.ReadConsistency()
	if err != nil {
		return nil, err
	}
	cluster := gocql.NewCluster(t.Server...)
	cluster.Port = t.Port
	cluster.Timeout = timeout
	cluster.Keyspace = t.Keyspace
	cluster.PageSize = t.Buffer.Read
	cluster.Consistency = cons
	if t.User != "" {
		cluster.Authenticator = gocql.PasswordAuthenticator{
			Username: t.User,
			Password: t.Password,
		}
	}
	return cluster, nil
}

// Dial opens one session to t. Session creation is attempted
// 1 + args.retries times, args.interval seconds apart.
func Dial(t *target.Target, log *cmn.Logger) (*Session, error) {
	var sess *gocql.Session
	var err error
	var retries, interval int = 0, target.DefaultInterval
	if err = t.GetInt("retries", &retries); err != nil {
		return nil, err
	}
	if err = t.GetInt("interval", &interval); err != nil {
		return nil, err
	}
	cluster, err := newCluster(t)
	if err != nil {
		return nil, err
	}
	for {
		if sess, err = cluster.CreateSession(); err == nil {
			break
		}
		if retries <= 0 {
			return nil, err
		}
		log.Warn("", "%s: %v", t.Address(), err)
		time.Sleep(time.Second * time.Duration(interval))
		retries--
	}
	return &Session{sess: sess}, nil
}

// CQL exposes the underlying session for schema work.
func (s *Session) CQL() *gocql.Session {
	return s.sess
}

func (s *Session) Close() {
	s.sess.Close()
}

func (s *Session) BatchInsert(
	keyspace, key string, mutation Mutation, cl gocql.Consistency,
) error {
	stmts := batchStatements(keyspace, key, mutation)
	if len(stmts) == 0 {
		return nil
	}
	b := s.sess.NewBatch(gocql.LoggedBatch)
	b.Cons = cl
	for _, st := range stmts {
		b.Query(st.Stmt, st.Args...)
	}
	return s.sess.ExecuteBatch(b)
}

func (s *Session) Remove(
	keyspace, key string, path ColumnPath, timestamp int64, cl gocql.Consistency,
) error {
	st := removeStatement(keyspace, key, path, timestamp)
	return s.sess.Query(st.Stmt, st.Args...).Consistency(cl).Exec()
}

func (s *Session) scan(st statement, cl gocql.Consistency, f *folder) error {
	i := s.sess.Query(st.Stmt, st.Args...).Consistency(cl).Iter()
	var c cell
	for i.Scan(&c.Name, &c.SubName, &c.Value, &c.Timestamp) {
		if !f.add(c) {
			break
		}
		c = cell{}
	}
	return i.Close()
}

func (s *Session) Get(
	keyspace, key string, path ColumnPath, cl gocql.Consistency,
) (ColumnOrSuperColumn, error) {
	parent := ColumnParent{ColumnFamily: path.ColumnFamily, SuperColumn: path.SuperColumn}
	f := newFolder(parent, 1)
	if err := s.scan(getStatement(keyspace, key, path), cl, f); err != nil {
		return ColumnOrSuperColumn{}, err
	}
	if len(f.out) == 0 {
		return ColumnOrSuperColumn{}, ErrNotFound
	}
	return f.out[0], nil
}

func (s *Session) GetSlice(
	keyspace, key string, parent ColumnParent, predicate SlicePredicate, cl gocql.Consistency,
) ([]ColumnOrSuperColumn, error) {
	f := newFolder(parent, predicate.Count)
	st := sliceStatement(keyspace, key, parent, predicate)
	if err := s.scan(st, cl, f); err != nil {
		return nil, err
	}
	return f.out, nil
}

func (s *Session) MultigetSlice(
	keyspace string, keys []string, parent ColumnParent, predicate SlicePredicate, cl gocql.Consistency,
) (map[string][]ColumnOrSuperColumn, error) {
	ret := make(map[string][]ColumnOrSuperColumn, len(keys))
	for _, key := range keys {
		cols, err := s.GetSlice(keyspace, key, parent, predicate, cl)
		if err != nil {
			return nil, err
		}
		ret[key] = cols
	}
	return ret, nil
}

func (s *Session) GetRangeSlice(
	keyspace string, parent ColumnParent, predicate SlicePredicate,
	startKey, finishKey string, rowCount int, cl gocql.Consistency,
) ([]KeySlice, error) {
	st := rangeStatement(keyspace, parent.ColumnFamily, startKey, finishKey, rowCount)
	i := s.sess.Query(st.Stmt, st.Args...).Consistency(cl).Iter()
	var key string
	keys := make([]string, 0, 10)
	for i.Scan(&key) {
		keys = append(keys, key)
	}
	if err := i.Close(); err != nil {
		return nil, err
	}

	ret := make([]KeySlice, 0, len(keys))
	for _, key := range keys {
		cols, err := s.GetSlice(keyspace, key, parent, predicate, cl)
		if err != nil {
			return nil, err
		}
		ret = append(ret, KeySlice{Key: key, Columns: cols})
	}
	return ret, nil
}
