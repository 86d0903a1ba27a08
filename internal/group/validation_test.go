package group

import (
	"errors"
	"testing"
)

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		doc     string
		wantErr error
	}{
		{
			name: "valid pairing",
			doc: `<group>
  <name>Kitchen Pair</name>
  <masterDeviceId>dev1</masterDeviceId>
  <roles>
    <groupRole><deviceId>dev1</deviceId><role>LEFT</role><ipAddress>10.0.0.5</ipAddress></groupRole>
    <groupRole><deviceId>dev2</deviceId><role>RIGHT</role><ipAddress>10.0.0.6</ipAddress></groupRole>
  </roles>
</group>`,
			wantErr: nil,
		},
		{
			name:    "unparsable",
			doc:     "<group><name>trunc",
			wantErr: ErrMalformedDocument,
		},
		{
			name: "missing name",
			doc: `<group>
  <masterDeviceId>dev1</masterDeviceId>
  <roles><groupRole><deviceId>dev1</deviceId></groupRole></roles>
</group>`,
			wantErr: ErrMissingName,
		},
		{
			name: "blank name",
			doc: `<group>
  <name>   </name>
  <masterDeviceId>dev1</masterDeviceId>
  <roles><groupRole><deviceId>dev1</deviceId></groupRole></roles>
</group>`,
			wantErr: ErrMissingName,
		},
		{
			name: "missing master",
			doc: `<group>
  <name>Pair</name>
  <roles><groupRole><deviceId>dev1</deviceId></groupRole></roles>
</group>`,
			wantErr: ErrMissingMaster,
		},
		{
			name: "no role entries",
			doc: `<group>
  <name>Pair</name>
  <masterDeviceId>dev1</masterDeviceId>
</group>`,
			wantErr: ErrNoRoleEntries,
		},
		{
			name: "role entries without device ids",
			doc: `<group>
  <name>Pair</name>
  <masterDeviceId>dev1</masterDeviceId>
  <roles><groupRole><role>LEFT</role></groupRole></roles>
</group>`,
			wantErr: ErrNoRoleEntries,
		},
		{
			name: "master not in roles",
			doc: `<group>
  <name>Pair</name>
  <masterDeviceId>dev9</masterDeviceId>
  <roles>
    <groupRole><deviceId>dev1</deviceId></groupRole>
    <groupRole><deviceId>dev2</deviceId></groupRole>
  </roles>
</group>`,
			wantErr: ErrMasterNotInRoles,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g, err := Validate([]byte(tt.doc))
			if tt.wantErr == nil {
				if err != nil {
					t.Fatalf("Validate() error = %v, want nil", err)
				}
				if g == nil {
					t.Fatal("Validate() returned nil group")
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Validate() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestValidateMemberCount(t *testing.T) {
	tests := []struct {
		name    string
		roles   []GroupRole
		wantErr bool
	}{
		{
			name: "exactly two distinct",
			roles: []GroupRole{
				{DeviceID: "dev1"},
				{DeviceID: "dev2"},
			},
			wantErr: false,
		},
		{
			name:    "one member",
			roles:   []GroupRole{{DeviceID: "dev1"}},
			wantErr: true,
		},
		{
			name: "three members",
			roles: []GroupRole{
				{DeviceID: "dev1"},
				{DeviceID: "dev2"},
				{DeviceID: "dev3"},
			},
			wantErr: true,
		},
		{
			name: "same device twice",
			roles: []GroupRole{
				{DeviceID: "dev1"},
				{DeviceID: "dev1"},
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateMemberCount(&Group{Roles: tt.roles})
			if tt.wantErr && !errors.Is(err, ErrWrongMemberCount) {
				t.Errorf("ValidateMemberCount() error = %v, want ErrWrongMemberCount", err)
			}
			if !tt.wantErr && err != nil {
				t.Errorf("ValidateMemberCount() error = %v, want nil", err)
			}
		})
	}
}
