package jacoco

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jacoscope/internal/domain"
)

func writeReport(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "jacocoTestReport.xml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

const singleClassReport = `<?xml version="1.0" encoding="UTF-8"?>
<report name="demo">
  <sessioninfo id="host-1" start="1" dump="2"/>
  <package name="com/x">
    <class name="com/x/Foo" sourcefilename="Foo.java">
      <method name="bar" desc="()V" line="3">
        <counter type="LINE" missed="1" covered="4"/>
        <counter type="BRANCH" missed="1" covered="1"/>
      </method>
      <counter type="INSTRUCTION" missed="10" covered="40"/>
      <counter type="LINE" missed="2" covered="8"/>
      <counter type="BRANCH" missed="1" covered="3"/>
    </class>
    <sourcefile name="Foo.java">
      <line nr="1" mi="0" ci="2" mb="0" cb="0"/>
      <counter type="LINE" missed="2" covered="8"/>
    </sourcefile>
    <counter type="LINE" missed="2" covered="8"/>
  </package>
  <counter type="LINE" missed="2" covered="8"/>
  <counter type="BRANCH" missed="1" covered="3"/>
</report>`

func TestParseSingleClass(t *testing.T) {
	path := writeReport(t, singleClassReport)

	res, err := New().Parse(path, domain.NewScopeQuery("", "", ""))
	require.NoError(t, err)

	// Method, sourcefile, package and report counters must not leak into
	// the totals; only the class's own immediate counters count.
	assert.Equal(t, domain.Counter{Missed: 2, Covered: 8}, res.Line)
	assert.Equal(t, domain.Counter{Missed: 1, Covered: 3}, res.Branch)
	require.Len(t, res.Classes, 1)
	assert.Equal(t, "com.x.Foo", res.Classes[0].Name)
	assert.InDelta(t, 0.8, res.Classes[0].Ratio(), 1e-9)
}

func TestParseFiltersByPackage(t *testing.T) {
	report := `<?xml version="1.0"?>
<report name="demo">
  <package name="com/x">
    <class name="com/x/Keep">
      <counter type="LINE" missed="0" covered="5"/>
    </class>
  </package>
  <package name="com/y">
    <class name="com/y/Bar">
      <counter type="LINE" missed="5" covered="0"/>
    </class>
  </package>
</report>`
	path := writeReport(t, report)

	res, err := New().Parse(path, domain.NewScopeQuery("", "com.x", ""))
	require.NoError(t, err)

	// com.y.Bar has worse coverage but is out of scope: neither its
	// record nor its counters may appear.
	assert.Equal(t, domain.Counter{Missed: 0, Covered: 5}, res.Line)
	require.Len(t, res.Classes, 1)
	assert.Equal(t, "com.x.Keep", res.Classes[0].Name)
}

func TestParseBuiltinExclusion(t *testing.T) {
	report := `<?xml version="1.0"?>
<report name="demo">
  <package name="com/x/generated">
    <class name="com/x/generated/Mapper">
      <counter type="LINE" missed="9" covered="1"/>
    </class>
  </package>
</report>`
	path := writeReport(t, report)

	// Explicitly targeting the class does not override the built-in
	// generated-code exclusion.
	res, err := New().Parse(path, domain.NewScopeQuery("", "", "Mapper"))
	require.NoError(t, err)

	assert.Zero(t, res.Line.Total())
	assert.Empty(t, res.Classes)
}

func TestParseInterfaceWithoutLinesOmitted(t *testing.T) {
	report := `<?xml version="1.0"?>
<report name="demo">
  <package name="com/x">
    <class name="com/x/Iface">
      <counter type="LINE" missed="0" covered="0"/>
    </class>
    <class name="com/x/Impl">
      <counter type="LINE" missed="3" covered="7"/>
    </class>
  </package>
</report>`
	path := writeReport(t, report)

	res, err := New().Parse(path, domain.NewScopeQuery("", "", ""))
	require.NoError(t, err)

	require.Len(t, res.Classes, 1)
	assert.Equal(t, "com.x.Impl", res.Classes[0].Name)
	assert.Equal(t, domain.Counter{Missed: 3, Covered: 7}, res.Line)
}

func TestParseMalformedXML(t *testing.T) {
	path := writeReport(t, `<report><package><class name="com/x/Foo">`)

	_, err := New().Parse(path, domain.NewScopeQuery("", "", ""))
	assert.Error(t, err)
}

func TestParseBadCounterValue(t *testing.T) {
	report := `<?xml version="1.0"?>
<report name="demo">
  <package name="com/x">
    <class name="com/x/Foo">
      <counter type="LINE" missed="many" covered="8"/>
    </class>
  </package>
</report>`
	path := writeReport(t, report)

	_, err := New().Parse(path, domain.NewScopeQuery("", "", ""))
	assert.Error(t, err)
}

func TestParseMissingFile(t *testing.T) {
	_, err := New().Parse(filepath.Join(t.TempDir(), "absent.xml"), domain.NewScopeQuery("", "", ""))
	assert.Error(t, err)
}

func TestParseGroupedMultiModuleReport(t *testing.T) {
	// Aggregate root reports nest packages under group elements.
	report := `<?xml version="1.0"?>
<report name="root">
  <group name="mod-a">
    <package name="com/a">
      <class name="com/a/One">
        <counter type="LINE" missed="1" covered="1"/>
      </class>
    </package>
  </group>
  <group name="mod-b">
    <package name="com/b">
      <class name="com/b/Two">
        <counter type="LINE" missed="0" covered="2"/>
        <counter type="BRANCH" missed="2" covered="2"/>
      </class>
    </package>
  </group>
</report>`
	path := writeReport(t, report)

	res, err := New().Parse(path, domain.NewScopeQuery("", "", ""))
	require.NoError(t, err)

	assert.Equal(t, domain.Counter{Missed: 1, Covered: 3}, res.Line)
	assert.Equal(t, domain.Counter{Missed: 2, Covered: 2}, res.Branch)
	assert.Len(t, res.Classes, 2)
}
