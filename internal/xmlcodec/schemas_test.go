package xmlcodec

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_Profile_RoundTrip(t *testing.T) {
	vrVersion := "2.0"
	p := ProfileXML{
		Name: "default",
		Systems: SystemsXML{
			Graphic: "OpenGL",
			Input:   "SDL2",
			VR:      strPtr("VRMod"),
			VRVersion: &vrVersion,
			Script:  "DragonScript",
		},
		DisabledModuleVersions: []DisabledModuleVersionXML{{Name: "OldAudio", Version: "0.9"}},
		Modules: []ModuleParamsXML{
			{Name: "OpenGL", Parameters: []ModuleParameterXML{{Name: "bright", Value: "1.0"}}},
		},
		RunArguments:        "-fullscreen",
		ReplaceRunArguments: true,
		Window:              WindowXML{FullScreen: true, Width: 1920, Height: 1080},
	}

	data, err := EncodeProfile(p)
	require.NoError(t, err)

	decoded, err := DecodeProfile(data, "test", nil)
	require.NoError(t, err)

	assert.Equal(t, p.Systems.Graphic, decoded.Systems.Graphic)
	assert.Equal(t, p.Systems.Input, decoded.Systems.Input)
	assert.True(t, decoded.Systems.HasVR())
	assert.Equal(t, "VRMod", *decoded.Systems.VR)
	assert.Equal(t, p.DisabledModuleVersions, decoded.DisabledModuleVersions)
	assert.Equal(t, p.RunArguments, decoded.RunArguments)
	assert.Equal(t, p.ReplaceRunArguments, decoded.ReplaceRunArguments)
	assert.Equal(t, p.Window, decoded.Window)
}

func Test_Profile_MissingVR_IsAbsent(t *testing.T) {
	legacy := `<profile name="old"><systems><graphic>OpenGL</graphic></systems></profile>`
	decoded, err := DecodeProfile([]byte(legacy), "legacy", nil)
	require.NoError(t, err)
	assert.False(t, decoded.Systems.HasVR(), "a document with no <vr> tag must report it absent, not merely empty")
}

func Test_Profile_UnknownTagWarns(t *testing.T) {
	doc := `<profile><systems></systems><bogusTag>x</bogusTag></profile>`
	var warned []string
	_, err := DecodeProfile([]byte(doc), "test", func(source, message string) {
		warned = append(warned, message)
	})
	require.NoError(t, err, "unknown tags must not fail the load")
	require.Len(t, warned, 1)
}

func Test_Degame_MissingMandatoryFieldFails(t *testing.T) {
	doc := `<degame><title>No Identifier</title></degame>`
	_, err := DecodeDegame([]byte(doc))
	assert.Error(t, err, "a degame manifest missing identifier must fail to load")
}

func Test_Module_MissingLibraryFails(t *testing.T) {
	doc := `<module><name>Foo</name><version>1.0</version><type>graphic</type></module>`
	_, err := DecodeModule([]byte(doc))
	assert.Error(t, err)
}

func strPtr(s string) *string { return &s }
